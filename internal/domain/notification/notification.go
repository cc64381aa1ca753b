// Package notification holds the queued-message aggregate used by alerting
// and dispatch. Delivery is at-least-once: an item stays pending until a
// sweep marks it sent or failed, and sent items are never picked up again.
package notification

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pharmaledger/backend/internal/domain/shared"
)

// Channel is the delivery channel for a notification
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Status is the dispatch state of a notification
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Payload is the template parameter map, stored as JSONB
type Payload map[string]string

// Value implements driver.Valuer
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Payload", value)
	}
	return json.Unmarshal(data, p)
}

// Notification is one queued outbound message
type Notification struct {
	shared.BaseEntity
	Recipient    string  `gorm:"type:varchar(50);not null"`
	Channel      Channel `gorm:"type:varchar(20);not null;default:'whatsapp'"`
	TemplateName string  `gorm:"type:varchar(100);not null"`
	Payload      Payload `gorm:"type:jsonb"`
	Status       Status  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts     int     `gorm:"not null;default:0"`
	LastError    string  `gorm:"type:text"`
	SentAt       *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification queues a new pending notification
func NewNotification(recipient string, channel Channel, templateName string, payload Payload) (*Notification, error) {
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if templateName == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template name cannot be empty")
	}
	if channel == "" {
		channel = ChannelWhatsApp
	}

	return &Notification{
		BaseEntity:   shared.NewBaseEntity(),
		Recipient:    recipient,
		Channel:      channel,
		TemplateName: templateName,
		Payload:      payload,
		Status:       StatusPending,
	}, nil
}

// MarkSent finalizes a successful dispatch. A sent notification is terminal.
func (n *Notification) MarkSent() error {
	if n.Status == StatusSent {
		return shared.NewDomainError("ALREADY_SENT", "Notification was already sent")
	}

	now := time.Now()
	n.Status = StatusSent
	n.Attempts++
	n.LastError = ""
	n.SentAt = &now
	n.Touch()

	return nil
}

// MarkFailed records a dispatch failure; the item stays eligible for a
// later sweep or manual requeue.
func (n *Notification) MarkFailed(reason string) error {
	if n.Status == StatusSent {
		return shared.NewDomainError("ALREADY_SENT", "Notification was already sent")
	}

	n.Status = StatusFailed
	n.Attempts++
	n.LastError = reason
	n.Touch()

	return nil
}

// Requeue puts a failed notification back into the pending queue
func (n *Notification) Requeue() error {
	if n.Status != StatusFailed {
		return shared.ErrInvalidState
	}

	n.Status = StatusPending
	n.Touch()

	return nil
}

// IsDispatchable reports whether a sweep may attempt delivery
func (n *Notification) IsDispatchable() bool {
	return n.Status == StatusPending
}
