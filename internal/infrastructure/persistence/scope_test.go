package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := newTestDB(t)
		batch := mustBatch(t, db, uuid.New(), 10, 30)
		scope := NewGormScope(db)

		err := scope.Execute(ctx, func(repos ledger.Repositories) error {
			return repos.Batches().DeductGuarded(ctx, batch.ID, decimal.NewFromInt(4))
		})

		require.NoError(t, err)
		reloaded, err := NewGormBatchRepository(db).FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Quantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("callback error rolls back earlier deductions", func(t *testing.T) {
		db := newTestDB(t)
		batch := mustBatch(t, db, uuid.New(), 10, 30)
		scope := NewGormScope(db)
		boom := errors.New("second line failed")

		err := scope.Execute(ctx, func(repos ledger.Repositories) error {
			if err := repos.Batches().DeductGuarded(ctx, batch.ID, decimal.NewFromInt(4)); err != nil {
				return err
			}
			return boom
		})

		require.ErrorIs(t, err, boom)
		reloaded, findErr := NewGormBatchRepository(db).FindByID(ctx, batch.ID)
		require.NoError(t, findErr)
		assert.True(t, reloaded.Quantity.Equal(decimal.NewFromInt(10)))
	})
}

func TestSequences(t *testing.T) {
	ctx := context.Background()

	t.Run("invoice sequence is monotonic", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormInvoiceRepository(db)

		first, err := repo.NextSequence(ctx)
		require.NoError(t, err)
		second, err := repo.NextSequence(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 1, first)
		assert.EqualValues(t, 2, second)
	})

	t.Run("bill sequence restarts per day", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormBillRepository(db)
		today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
		tomorrow := today.AddDate(0, 0, 1)

		first, err := repo.NextDailySequence(ctx, today)
		require.NoError(t, err)
		second, err := repo.NextDailySequence(ctx, today)
		require.NoError(t, err)
		nextDay, err := repo.NextDailySequence(ctx, tomorrow)
		require.NoError(t, err)

		assert.EqualValues(t, 1, first)
		assert.EqualValues(t, 2, second)
		assert.EqualValues(t, 1, nextDay)
	})

	t.Run("customer code sequence is monotonic", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormCustomerRepository(db)

		first, err := repo.NextCodeSequence(ctx)
		require.NoError(t, err)
		second, err := repo.NextCodeSequence(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 1, first)
		assert.EqualValues(t, 2, second)
	})
}
