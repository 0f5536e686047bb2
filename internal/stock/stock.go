package stock

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("document introuvable")
	ErrNegativeStock     = errors.New("le stock ne peut pas être négatif")
	ErrConflict          = errors.New("écriture concurrente, transition non appliquée")
	ErrInvalidTransition = errors.New("transition de statut non autorisée")
	ErrInvalidAdjustMode = errors.New("mode d'ajustement invalide")
)

type AdjustMode string

const (
	AdjustAdd AdjustMode = "add"
	AdjustSet AdjustMode = "set"
)

// Movement décrit la trace d'audit associée à chaque mutation de stock.
type Movement struct {
	Type    string
	Reason  string
	Actor   string
	OrderID string
}

// Store est la frontière vers le stockage. Toutes les écritures du cycle de vie
// sont conditionnelles : le stock par CAS sur la valeur courante, les statuts
// par "applique seulement si le statut courant vaut encore from". C'est ce
// booléen applied qui garantit l'exactement-une-fois côté réconciliation.
type Store interface {
	// StockDelta ajoute delta (positif ou négatif) au stock du produit, de façon
	// atomique. Refuse avec ErrNegativeStock si le résultat serait négatif.
	StockDelta(ctx context.Context, productID string, delta int, mv Movement) (newStock int, err error)

	// StockSet force le stock à une valeur absolue (>= 0), de façon atomique.
	StockSet(ctx context.Context, productID string, value int, mv Movement) (newStock int, err error)

	// OrderStatusCAS écrit to seulement si le statut courant vaut from.
	OrderStatusCAS(ctx context.Context, orderID string, from, to OrderStatus, at time.Time) (applied bool, err error)

	// ReturnStatusCAS écrit to seulement si le statut courant vaut from.
	// returnedAt est posé uniquement pour la transition vers completed.
	ReturnStatusCAS(ctx context.Context, returnID string, from, to ReturnStatus, at time.Time, returnedAt *time.Time) (applied bool, err error)
}

// AdjustStock est la correction manuelle de stock côté vendeur (hors commandes/retours).
func AdjustStock(ctx context.Context, store Store, productID string, mode AdjustMode, value int, actor string) (int, error) {
	mv := Movement{Type: "adjustment", Reason: "ajustement manuel vendeur", Actor: actor}
	switch mode {
	case AdjustAdd:
		mv.Type = "restock"
		return store.StockDelta(ctx, productID, value, mv)
	case AdjustSet:
		if value < 0 {
			return 0, ErrNegativeStock
		}
		return store.StockSet(ctx, productID, value, mv)
	default:
		return 0, ErrInvalidAdjustMode
	}
}
