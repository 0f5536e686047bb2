package stock

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"sakado_back_end/internal/database"
)

// Nombre d'essais de la boucle CAS avant d'abandonner sur contention.
const casMaxRetries = 5

// ScyllaStore implémente Store avec des lightweight transactions ScyllaDB :
// compare-and-swap sur la colonne stock, écritures de statut conditionnelles.
// Deux annulations concurrentes qui relâchent chacune 2 unités sur un stock de
// 10 finissent donc toujours à 14, jamais à 12.
type ScyllaStore struct{}

func NewScyllaStore() *ScyllaStore {
	return &ScyllaStore{}
}

func (s *ScyllaStore) StockDelta(ctx context.Context, productID string, delta int, mv Movement) (int, error) {
	return s.applyStock(ctx, productID, func(current int) int { return current + delta }, mv)
}

func (s *ScyllaStore) StockSet(ctx context.Context, productID string, value int, mv Movement) (int, error) {
	return s.applyStock(ctx, productID, func(int) int { return value }, mv)
}

func (s *ScyllaStore) applyStock(ctx context.Context, productID string, next func(int) int, mv Movement) (int, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return 0, ErrNotFound
	}
	productUUID := gocql.UUID(pid)

	session, err := database.GetProductsSession()
	if err != nil {
		return 0, err
	}

	var current int
	if err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, productUUID).
		WithContext(ctx).Scan(&current); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		newStock := next(current)
		if newStock < 0 {
			return 0, ErrNegativeStock
		}

		applied, err := session.Query(
			`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			newStock, time.Now(), productUUID, current,
		).WithContext(ctx).ScanCAS(&current)
		if err != nil {
			return 0, err
		}
		if applied {
			s.recordMovement(productUUID, mv, current, newStock)
			return newStock, nil
		}
		// current a été rafraîchi par ScanCAS avec la valeur réelle ; on réessaie
	}

	return 0, ErrConflict
}

// recordMovement trace la mutation dans stock_movements, en best effort.
func (s *ScyllaStore) recordMovement(productID gocql.UUID, mv Movement, prevStock, newStock int) {
	session, err := database.GetProductsSession()
	if err != nil {
		return
	}

	var orderID *gocql.UUID
	if mv.OrderID != "" {
		if oid, err := uuid.Parse(mv.OrderID); err == nil {
			u := gocql.UUID(oid)
			orderID = &u
		}
	}

	if err := session.Query(`
		INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, order_id, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), productID, mv.Type, newStock-prevStock, prevStock, newStock,
		mv.Reason, orderID, mv.Actor, time.Now(),
	).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock: %v", err)
	}
}

func (s *ScyllaStore) OrderStatusCAS(ctx context.Context, orderID string, from, to OrderStatus, at time.Time) (bool, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return false, ErrNotFound
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return false, err
	}

	var current string
	applied, err := session.Query(
		`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ? IF status = ?`,
		string(to), at, gocql.UUID(oid), string(from),
	).WithContext(ctx).ScanCAS(&current)
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (s *ScyllaStore) ReturnStatusCAS(ctx context.Context, returnID string, from, to ReturnStatus, at time.Time, returnedAt *time.Time) (bool, error) {
	rid, err := uuid.Parse(returnID)
	if err != nil {
		return false, ErrNotFound
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return false, err
	}

	var current string
	var query *gocql.Query
	if returnedAt != nil {
		query = session.Query(
			`UPDATE returns SET status = ?, returned_at = ?, updated_at = ? WHERE return_id = ? IF status = ?`,
			string(to), *returnedAt, at, gocql.UUID(rid), string(from),
		)
	} else {
		query = session.Query(
			`UPDATE returns SET status = ?, updated_at = ? WHERE return_id = ? IF status = ?`,
			string(to), at, gocql.UUID(rid), string(from),
		)
	}

	applied, err := query.WithContext(ctx).ScanCAS(&current)
	if err != nil {
		return false, err
	}
	return applied, nil
}
