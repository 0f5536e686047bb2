package stock

import (
	"context"
	"log"
	"time"

	"sakado_back_end/internal/models"
)

// Reconciler applique les effets d'inventaire liés aux changements de statut
// des commandes et des retours. La garantie centrale : la restauration du stock
// ne part que si l'écriture conditionnelle du statut a réellement été appliquée,
// jamais sur la foi d'un instantané côté client.
type Reconciler struct {
	Store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{Store: store}
}

// ChangeOrderStatus fait passer la commande à newStatus et, sur la transition
// vers cancelled, restaure le stock des lignes du vendeur agissant.
// actor vide = admin : toutes les lignes sont concernées.
// Un échec de restauration sur une ligne est loggé et n'empêche ni les autres
// lignes ni le statut (déjà durable) — chaque écriture laisse de toute façon
// un mouvement de stock auditable.
func (r *Reconciler) ChangeOrderStatus(ctx context.Context, order models.Order, newStatus OrderStatus, actor string) (models.Order, error) {
	from := OrderStatus(order.Status)
	if from == newStatus {
		// L'UI désactive la sélection du même statut ; no-op par sécurité
		return order, nil
	}
	if !CanTransitionOrder(from, newStatus) {
		return order, ErrInvalidTransition
	}

	now := time.Now()
	applied, err := r.Store.OrderStatusCAS(ctx, order.ID.String(), from, newStatus, now)
	if err != nil {
		return order, err
	}
	if !applied {
		// Quelqu'un d'autre a déjà déplacé la commande : pas de restauration
		return order, ErrConflict
	}

	if newStatus == OrderCancelled {
		r.restoreItems(ctx, order, actor, "cancel_restore", "annulation de commande")
	}

	order.Status = string(newStatus)
	order.UpdatedAt = now
	return order, nil
}

func (r *Reconciler) restoreItems(ctx context.Context, order models.Order, actor, mvType, reason string) {
	for _, item := range order.Items {
		if actor != "" && item.SellerID != actor && item.SellerEmail != actor {
			continue
		}
		mv := Movement{Type: mvType, Reason: reason, Actor: actor, OrderID: order.ID.String()}
		if _, err := r.Store.StockDelta(ctx, item.ProductID, item.Quantity, mv); err != nil {
			log.Printf("⚠️ Restauration stock échouée pour produit %s (commande %s): %v",
				item.ProductID, order.OrderNumber, err)
		}
	}
}

// SetReturnStatus approuve ou rejette un retour en attente. Aucune incidence
// sur l'inventaire ; la double approbation est bloquée par l'écriture
// conditionnelle (pending requis).
func (r *Reconciler) SetReturnStatus(ctx context.Context, ret models.Return, decision ReturnStatus) (models.Return, error) {
	if decision != ReturnApproved && decision != ReturnRejected {
		return ret, ErrInvalidTransition
	}
	if ReturnStatus(ret.Status) != ReturnPending {
		return ret, ErrInvalidTransition
	}

	now := time.Now()
	applied, err := r.Store.ReturnStatusCAS(ctx, ret.ID.String(), ReturnPending, decision, now, nil)
	if err != nil {
		return ret, err
	}
	if !applied {
		return ret, ErrConflict
	}

	ret.Status = string(decision)
	ret.UpdatedAt = &now
	return ret, nil
}

// CompleteReturn marque un retour approuvé comme restitué ("mark as returned").
// C'est la seule transition du cycle retour qui touche l'inventaire : le stock
// du produit référencé est incrémenté de la quantité retournée, exactement une
// fois, après que le passage approved -> completed a été appliqué.
func (r *Reconciler) CompleteReturn(ctx context.Context, ret models.Return) (models.Return, error) {
	if ReturnStatus(ret.Status) != ReturnApproved {
		return ret, ErrInvalidTransition
	}

	now := time.Now()
	applied, err := r.Store.ReturnStatusCAS(ctx, ret.ID.String(), ReturnApproved, ReturnCompleted, now, &now)
	if err != nil {
		return ret, err
	}
	if !applied {
		return ret, ErrConflict
	}

	mv := Movement{
		Type:   "return_restore",
		Reason: "retour client restitué",
		Actor:  ret.SellerEmail,
	}
	if _, err := r.Store.StockDelta(ctx, ret.ProductID.String(), ret.Quantity, mv); err != nil {
		// Le statut est déjà durable et ne repartira pas ; on logge pour reprise manuelle
		log.Printf("⚠️ Restauration stock échouée pour retour %s (produit %s): %v",
			ret.ID, ret.ProductID, err)
	}

	ret.Status = string(ReturnCompleted)
	ret.ReturnedAt = &now
	ret.UpdatedAt = &now
	return ret, nil
}
