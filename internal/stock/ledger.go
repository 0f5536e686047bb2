package stock

import (
	"sort"

	"sakado_back_end/internal/models"
)

// SortPaymentsByPaidAt trie le registre par date de paiement décroissante.
// Le tri se fait côté client : la requête reste non ordonnée pour éviter
// d'exiger un index composite.
func SortPaymentsByPaidAt(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})
}

// TotalReceived recalcule le total perçu : somme des montants dont le statut
// est "completed". Recalculé intégralement à chaque push de l'abonnement.
func TotalReceived(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == "completed" {
			total += p.Amount
		}
	}
	return total
}
