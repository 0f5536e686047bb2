package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjustStock_FoldOfDeltasAndSets(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 10

	ctx := context.Background()

	newStock, err := AdjustStock(ctx, store, pid, AdjustAdd, 5, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, 15, newStock)

	newStock, err = AdjustStock(ctx, store, pid, AdjustAdd, -3, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, 12, newStock)

	newStock, err = AdjustStock(ctx, store, pid, AdjustSet, 4, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, 4, newStock)
	require.Equal(t, 4, store.stock(pid))
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 2

	ctx := context.Background()

	// set 0 puis add -1 : le second est refusé sans effet
	newStock, err := AdjustStock(ctx, store, pid, AdjustSet, 0, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, 0, newStock)

	_, err = AdjustStock(ctx, store, pid, AdjustAdd, -1, "vendeur@sakado.com")
	require.ErrorIs(t, err, ErrNegativeStock)
	require.Equal(t, 0, store.stock(pid), "une tentative refusée ne change rien")

	_, err = AdjustStock(ctx, store, pid, AdjustSet, -5, "vendeur@sakado.com")
	require.ErrorIs(t, err, ErrNegativeStock)
	require.Equal(t, 0, store.stock(pid))
}

func TestAdjustStock_UnknownProductAndMode(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	_, err := AdjustStock(ctx, store, productID(9), AdjustAdd, 1, "vendeur@sakado.com")
	require.ErrorIs(t, err, ErrNotFound)

	store.stocks[productID(1)] = 1
	_, err = AdjustStock(ctx, store, productID(1), AdjustMode("replace"), 1, "vendeur@sakado.com")
	require.ErrorIs(t, err, ErrInvalidAdjustMode)
}
