package stock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"sakado_back_end/internal/models"
)

// fakeStore reproduit en mémoire la sémantique CAS du store réel.
type fakeStore struct {
	mu        sync.Mutex
	stocks    map[string]int
	orders    map[string]string
	returns   map[string]string
	movements []Movement
	failOn    map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stocks:  map[string]int{},
		orders:  map[string]string{},
		returns: map[string]string{},
		failOn:  map[string]error{},
	}
}

func (f *fakeStore) StockDelta(_ context.Context, productID string, delta int, mv Movement) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[productID]; ok {
		return 0, err
	}
	current, ok := f.stocks[productID]
	if !ok {
		return 0, ErrNotFound
	}
	next := current + delta
	if next < 0 {
		return 0, ErrNegativeStock
	}
	f.stocks[productID] = next
	f.movements = append(f.movements, mv)
	return next, nil
}

func (f *fakeStore) StockSet(_ context.Context, productID string, value int, mv Movement) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stocks[productID]; !ok {
		return 0, ErrNotFound
	}
	if value < 0 {
		return 0, ErrNegativeStock
	}
	f.stocks[productID] = value
	f.movements = append(f.movements, mv)
	return value, nil
}

func (f *fakeStore) OrderStatusCAS(_ context.Context, orderID string, from, to OrderStatus, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orders[orderID] != string(from) {
		return false, nil
	}
	f.orders[orderID] = string(to)
	return true, nil
}

func (f *fakeStore) ReturnStatusCAS(_ context.Context, returnID string, from, to ReturnStatus, _ time.Time, _ *time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.returns[returnID] != string(from) {
		return false, nil
	}
	f.returns[returnID] = string(to)
	return true, nil
}

func (f *fakeStore) stock(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stocks[productID]
}

func makeOrder(store *fakeStore, status string, items ...models.OrderItem) models.Order {
	order := models.Order{
		ID:          gocql.TimeUUID(),
		OrderNumber: "SKD-2026-000042",
		Status:      status,
		Items:       items,
	}
	store.orders[order.ID.String()] = status
	return order
}

func makeReturn(store *fakeStore, status, productID string, qty int) models.Return {
	pid, _ := gocql.ParseUUID(productID)
	ret := models.Return{
		ID:          gocql.TimeUUID(),
		OrderNumber: "SKD-2026-000042",
		ProductID:   pid,
		SellerEmail: "vendeur@sakado.com",
		Quantity:    qty,
		Status:      status,
	}
	store.returns[ret.ID.String()] = status
	return ret
}

func productID(n int) string {
	return fmt.Sprintf("10000000-0000-0000-0000-%012d", n)
}

func TestChangeOrderStatus_CancelRestoresStockOnce(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 10

	order := makeOrder(store, "pending", models.OrderItem{
		ProductID: pid, SellerEmail: "vendeur@sakado.com", Quantity: 3,
	})

	r := NewReconciler(store)
	updated, err := r.ChangeOrderStatus(context.Background(), order, OrderCancelled, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, "cancelled", updated.Status)
	require.Equal(t, 13, store.stock(pid))

	// Ré-invocation avec un instantané périmé (status=pending) : le CAS échoue,
	// aucune seconde restauration
	_, err = r.ChangeOrderStatus(context.Background(), order, OrderCancelled, "vendeur@sakado.com")
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, 13, store.stock(pid))

	// Même statut = no-op
	same, err := r.ChangeOrderStatus(context.Background(), updated, OrderCancelled, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, "cancelled", same.Status)
	require.Equal(t, 13, store.stock(pid))
}

func TestChangeOrderStatus_OnlyActingSellerItems(t *testing.T) {
	store := newFakeStore()
	mine, other := productID(1), productID(2)
	store.stocks[mine] = 5
	store.stocks[other] = 5

	order := makeOrder(store, "confirmed",
		models.OrderItem{ProductID: mine, SellerEmail: "vendeur@sakado.com", Quantity: 2},
		models.OrderItem{ProductID: other, SellerEmail: "autre@sakado.com", Quantity: 4},
	)

	r := NewReconciler(store)
	_, err := r.ChangeOrderStatus(context.Background(), order, OrderCancelled, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, 7, store.stock(mine))
	require.Equal(t, 5, store.stock(other), "les lignes des autres vendeurs ne bougent pas")
}

func TestChangeOrderStatus_AdminRestoresAllItems(t *testing.T) {
	store := newFakeStore()
	a, b := productID(1), productID(2)
	store.stocks[a] = 1
	store.stocks[b] = 1

	order := makeOrder(store, "pending",
		models.OrderItem{ProductID: a, SellerEmail: "v1@sakado.com", Quantity: 2},
		models.OrderItem{ProductID: b, SellerEmail: "v2@sakado.com", Quantity: 3},
	)

	r := NewReconciler(store)
	_, err := r.ChangeOrderStatus(context.Background(), order, OrderCancelled, "")
	require.NoError(t, err)
	require.Equal(t, 3, store.stock(a))
	require.Equal(t, 4, store.stock(b))
}

func TestChangeOrderStatus_ItemFailureDoesNotBlockOthers(t *testing.T) {
	store := newFakeStore()
	broken, fine := productID(1), productID(2)
	store.stocks[fine] = 10
	store.failOn[broken] = ErrNotFound

	order := makeOrder(store, "pending",
		models.OrderItem{ProductID: broken, SellerEmail: "vendeur@sakado.com", Quantity: 1},
		models.OrderItem{ProductID: fine, SellerEmail: "vendeur@sakado.com", Quantity: 2},
	)

	r := NewReconciler(store)
	updated, err := r.ChangeOrderStatus(context.Background(), order, OrderCancelled, "vendeur@sakado.com")
	require.NoError(t, err, "l'échec d'une ligne n'avorte pas la transition")
	require.Equal(t, "cancelled", updated.Status)
	require.Equal(t, 12, store.stock(fine))
}

func TestChangeOrderStatus_NoRestoreOnOtherTransitions(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 10

	order := makeOrder(store, "pending", models.OrderItem{
		ProductID: pid, SellerEmail: "vendeur@sakado.com", Quantity: 3,
	})

	r := NewReconciler(store)
	updated, err := r.ChangeOrderStatus(context.Background(), order, OrderProcessing, "vendeur@sakado.com")
	require.NoError(t, err)
	require.Equal(t, "processing", updated.Status)
	require.Equal(t, 10, store.stock(pid))
}

func TestChangeOrderStatus_InvalidTransition(t *testing.T) {
	store := newFakeStore()
	order := makeOrder(store, "cancelled")

	r := NewReconciler(store)
	_, err := r.ChangeOrderStatus(context.Background(), order, OrderShipped, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteReturn_RestoresStockAndStampsReturnedAt(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 5

	ret := makeReturn(store, "approved", pid, 2)

	r := NewReconciler(store)
	updated, err := r.CompleteReturn(context.Background(), ret)
	require.NoError(t, err)
	require.Equal(t, "completed", updated.Status)
	require.NotNil(t, updated.ReturnedAt)
	require.Equal(t, 7, store.stock(pid))

	// Rejouer avec l'instantané périmé : conflit, pas de double restauration
	_, err = r.CompleteReturn(context.Background(), ret)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, 7, store.stock(pid))
}

func TestSetReturnStatus_NoInventoryEffect(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 5

	ret := makeReturn(store, "pending", pid, 2)

	r := NewReconciler(store)
	approved, err := r.SetReturnStatus(context.Background(), ret, ReturnApproved)
	require.NoError(t, err)
	require.Equal(t, "approved", approved.Status)
	require.Equal(t, 5, store.stock(pid), "l'approbation ne touche pas l'inventaire")

	// Double approbation bloquée par l'écriture conditionnelle
	_, err = r.SetReturnStatus(context.Background(), ret, ReturnApproved)
	require.ErrorIs(t, err, ErrConflict)
}

func TestSetReturnStatus_RejectIsTerminal(t *testing.T) {
	store := newFakeStore()
	ret := makeReturn(store, "pending", productID(1), 1)
	store.stocks[productID(1)] = 3

	r := NewReconciler(store)
	rejected, err := r.SetReturnStatus(context.Background(), ret, ReturnRejected)
	require.NoError(t, err)
	require.Equal(t, "rejected", rejected.Status)

	_, err = r.CompleteReturn(context.Background(), rejected)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, 3, store.stock(productID(1)))
}

func TestCompleteReturn_RequiresApproved(t *testing.T) {
	store := newFakeStore()
	ret := makeReturn(store, "pending", productID(1), 1)

	r := NewReconciler(store)
	_, err := r.CompleteReturn(context.Background(), ret)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConcurrentCancellations_NoLostIncrement(t *testing.T) {
	store := newFakeStore()
	pid := productID(1)
	store.stocks[pid] = 10

	order1 := makeOrder(store, "pending", models.OrderItem{
		ProductID: pid, SellerEmail: "vendeur@sakado.com", Quantity: 2,
	})
	order2 := makeOrder(store, "pending", models.OrderItem{
		ProductID: pid, SellerEmail: "vendeur@sakado.com", Quantity: 2,
	})

	r := NewReconciler(store)

	var wg sync.WaitGroup
	for _, o := range []models.Order{order1, order2} {
		wg.Add(1)
		go func(o models.Order) {
			defer wg.Done()
			_, err := r.ChangeOrderStatus(context.Background(), o, OrderCancelled, "vendeur@sakado.com")
			require.NoError(t, err)
		}(o)
	}
	wg.Wait()

	// Incréments atomiques : jamais 12 (lecture-modification-écriture naïve)
	require.Equal(t, 14, store.stock(pid))
}
