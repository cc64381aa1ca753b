package persistence

import (
	"context"

	"gorm.io/gorm"
)

// Counter is a named monotonic sequence row. Bill, invoice and customer
// code numbering all draw from this table through an atomic upsert, so
// concurrent transactions never see the same value twice.
type Counter struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "counters"
}

// nextSequence increments the named counter and returns the new value
func nextSequence(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
