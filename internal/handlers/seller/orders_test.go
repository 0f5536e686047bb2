package seller

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"sakado_back_end/internal/models"
)

func TestFilterSellerOrders_OnlyOwnLines(t *testing.T) {
	sellerA := gocql.TimeUUID().String()
	sellerB := gocql.TimeUUID().String()
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{
			ID:          gocql.TimeUUID(),
			OrderNumber: "SKD-2026-000001",
			Status:      "confirmed",
			TotalAmount: 150,
			CreatedAt:   base,
			Items: []models.OrderItem{
				{ProductID: "p1", SellerID: sellerA, SellerEmail: "a@sakado.be", Quantity: 2, Price: 25},
				{ProductID: "p2", SellerID: sellerB, SellerEmail: "b@sakado.be", Quantity: 1, Price: 100},
			},
		},
		{
			ID:          gocql.TimeUUID(),
			OrderNumber: "SKD-2026-000002",
			Status:      "delivered",
			TotalAmount: 60,
			CreatedAt:   base.Add(time.Hour),
			Items: []models.OrderItem{
				{ProductID: "p3", SellerID: sellerB, SellerEmail: "b@sakado.be", Quantity: 3, Price: 20},
			},
		},
	}

	views := filterSellerOrders(orders, sellerA, "a@sakado.be")

	require.Len(t, views, 1)
	require.Equal(t, "SKD-2026-000001", views[0].OrderNumber)
	require.Len(t, views[0].Items, 1)
	require.Equal(t, "p1", views[0].Items[0].ProductID)
	// Le total affiché est recalculé sur les lignes du vendeur, pas le total commande
	require.InDelta(t, 50.0, views[0].SellerTotal, 0.001)
}

func TestFilterSellerOrders_MatchesByEmailToo(t *testing.T) {
	orders := []models.Order{
		{
			ID:        gocql.TimeUUID(),
			Status:    "pending",
			CreatedAt: time.Now(),
			Items: []models.OrderItem{
				{ProductID: "p1", SellerID: "autre-id", SellerEmail: "a@sakado.be", Quantity: 1, Price: 10},
			},
		},
	}

	views := filterSellerOrders(orders, gocql.TimeUUID().String(), "a@sakado.be")
	require.Len(t, views, 1)
}

func TestFilterSellerOrders_NewestFirst(t *testing.T) {
	seller := gocql.TimeUUID().String()
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: gocql.TimeUUID(), OrderNumber: "SKD-2026-000001", CreatedAt: base,
			Items: []models.OrderItem{{ProductID: "p1", SellerID: seller, Quantity: 1, Price: 5}}},
		{ID: gocql.TimeUUID(), OrderNumber: "SKD-2026-000002", CreatedAt: base.Add(time.Hour),
			Items: []models.OrderItem{{ProductID: "p2", SellerID: seller, Quantity: 1, Price: 5}}},
	}

	views := filterSellerOrders(orders, seller, "")
	require.Equal(t, "SKD-2026-000002", views[0].OrderNumber)
	require.Equal(t, "SKD-2026-000001", views[1].OrderNumber)
}
