// Package settings holds the single-row pharmacy configuration that backs
// the alert sweeps and notification templates.
package settings

import (
	"time"

	"github.com/pharmaledger/backend/internal/domain/shared"
)

// Defaults applied when no settings row exists yet
const (
	DefaultLowStockThreshold = 10
	DefaultExpiryAlertDays   = 15
)

// Settings is the pharmacy-wide configuration aggregate
type Settings struct {
	shared.BaseAggregateRoot
	PharmacyName      string `gorm:"type:varchar(200);not null;default:''"`
	ContactPhone      string `gorm:"type:varchar(50)"`
	AlertRecipient    string `gorm:"type:varchar(50)"` // phone receiving stock alerts
	LowStockThreshold int    `gorm:"not null;default:10"`
	ExpiryAlertDays   int    `gorm:"not null;default:15"`
	LowStockTemplate  string `gorm:"type:varchar(100);not null;default:'low_stock_alert'"`
	ExpiryTemplate    string `gorm:"type:varchar(100);not null;default:'expiry_alert'"`
}

// TableName returns the table name for GORM
func (Settings) TableName() string {
	return "settings"
}

// NewDefaultSettings creates the initial settings row
func NewDefaultSettings() *Settings {
	return &Settings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LowStockThreshold: DefaultLowStockThreshold,
		ExpiryAlertDays:   DefaultExpiryAlertDays,
		LowStockTemplate:  "low_stock_alert",
		ExpiryTemplate:    "expiry_alert",
	}
}

// UpdateThresholds sets the alert thresholds
func (s *Settings) UpdateThresholds(lowStock, expiryDays int) error {
	if lowStock < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	if expiryDays <= 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Expiry alert days must be positive")
	}

	s.LowStockThreshold = lowStock
	s.ExpiryAlertDays = expiryDays
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// UpdateContact sets the pharmacy contact details
func (s *Settings) UpdateContact(pharmacyName, contactPhone, alertRecipient string) error {
	if pharmacyName != "" && len(pharmacyName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Pharmacy name cannot exceed 200 characters")
	}

	s.PharmacyName = pharmacyName
	s.ContactPhone = contactPhone
	s.AlertRecipient = alertRecipient
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ThresholdFor resolves the effective low stock threshold for a medicine,
// preferring the per-medicine override.
func (s *Settings) ThresholdFor(override *int) int {
	if override != nil {
		return *override
	}
	return s.LowStockThreshold
}
