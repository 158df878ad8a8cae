package services_test

import (
	"testing"

	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/domain/services"
	"mediquick/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, productID kernel.UUID, stock int) *inventory.Record {
	t.Helper()
	r, err := inventory.NewRecord(productID, "Amoxicillin", stock, 5)
	require.NoError(t, err)
	return r
}

func item(t *testing.T, productID kernel.UUID, qty int) order.Item {
	t.Helper()
	i, err := order.NewItem(productID, "Amoxicillin", qty, 1299)
	require.NoError(t, err)
	return i
}

func TestStockReservationService_ReserveAll(t *testing.T) {
	svc := services.NewStockReservationService()

	t.Run("reserves_every_line", func(t *testing.T) {
		p1, p2 := kernel.NewUUID(), kernel.NewUUID()
		r1, r2 := record(t, p1, 10), record(t, p2, 10)

		err := svc.ReserveAll(
			[]*inventory.Record{r1, r2},
			[]order.Item{item(t, p1, 3), item(t, p2, 4)},
		)

		require.NoError(t, err)
		assert.Equal(t, 7, r1.CurrentStock())
		assert.Equal(t, 6, r2.CurrentStock())
	})

	t.Run("one_shortfall_leaves_all_records_unchanged", func(t *testing.T) {
		p1, p2, p3 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		r1, r2, r3 := record(t, p1, 10), record(t, p2, 2), record(t, p3, 10)

		err := svc.ReserveAll(
			[]*inventory.Record{r1, r2, r3},
			[]order.Item{item(t, p1, 3), item(t, p2, 5), item(t, p3, 1)},
		)

		require.ErrorIs(t, err, inventory.ErrInsufficientStock)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.True(t, stockErr.ProductID.IsEqual(p2))
		assert.Equal(t, 5, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)

		assert.Equal(t, 10, r1.CurrentStock())
		assert.Equal(t, 2, r2.CurrentStock())
		assert.Equal(t, 10, r3.CurrentStock())
	})

	t.Run("duplicate_lines_are_checked_against_combined_demand", func(t *testing.T) {
		p1 := kernel.NewUUID()
		r1 := record(t, p1, 5)

		err := svc.ReserveAll(
			[]*inventory.Record{r1},
			[]order.Item{item(t, p1, 3), item(t, p1, 3)},
		)

		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, 5, r1.CurrentStock())
	})

	t.Run("missing_record_is_not_found", func(t *testing.T) {
		p1, missing := kernel.NewUUID(), kernel.NewUUID()
		r1 := record(t, p1, 5)

		err := svc.ReserveAll(
			[]*inventory.Record{r1},
			[]order.Item{item(t, p1, 1), item(t, missing, 1)},
		)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, 5, r1.CurrentStock())
	})

	t.Run("exact_stock_succeeds", func(t *testing.T) {
		p1 := kernel.NewUUID()
		r1 := record(t, p1, 4)

		require.NoError(t, svc.ReserveAll(
			[]*inventory.Record{r1},
			[]order.Item{item(t, p1, 4)},
		))
		assert.Equal(t, 0, r1.CurrentStock())
	})
}

func TestStockReservationService_ReleaseAll(t *testing.T) {
	svc := services.NewStockReservationService()

	t.Run("reserve_then_release_restores_exact_levels", func(t *testing.T) {
		p1, p2 := kernel.NewUUID(), kernel.NewUUID()
		r1, r2 := record(t, p1, 8), record(t, p2, 3)
		items := []order.Item{item(t, p1, 2), item(t, p2, 3)}
		records := []*inventory.Record{r1, r2}

		require.NoError(t, svc.ReserveAll(records, items))
		require.NoError(t, svc.ReleaseAll(records, items))

		assert.Equal(t, 8, r1.CurrentStock())
		assert.Equal(t, 3, r2.CurrentStock())
	})

	t.Run("missing_record_is_not_found", func(t *testing.T) {
		err := svc.ReleaseAll(nil, []order.Item{item(t, kernel.NewUUID(), 1)})
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
