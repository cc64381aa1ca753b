package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/settings"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema. SQLite honors the same upsert and conditional-update SQL the
// repositories issue against PostgreSQL, which keeps these tests honest
// about what actually hits the database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Medicine{},
		&inventory.Batch{},
		&partner.Customer{},
		&partner.Vendor{},
		&trade.Sale{},
		&trade.SaleItem{},
		&trade.Bill{},
		&trade.BillItem{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
		&trade.PaymentRecord{},
		&trade.Invoice{},
		&notification.Notification{},
		&settings.Settings{},
		&Counter{},
	))
	return db
}

// mustBatch creates and stores a batch with the given stock and expiry offset
func mustBatch(t *testing.T, db *gorm.DB, medicineID uuid.UUID, qty int64, expiryDays int) *inventory.Batch {
	t.Helper()
	batch, err := inventory.NewBatch(
		medicineID,
		fmt.Sprintf("LOT-%d", expiryDays),
		decimal.NewFromInt(qty),
		decimal.NewFromInt(10),
		decimal.NewFromInt(25),
		time.Now().AddDate(0, 0, expiryDays),
		nil,
		time.Now(),
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, NewGormBatchRepository(db).Save(context.Background(), batch))
	return batch
}
