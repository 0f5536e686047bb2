package storefront

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"sakado_back_end/internal/models"
)

func sampleProducts(t *testing.T) []models.Product {
	t.Helper()
	catA := gocql.TimeUUID()
	catB := gocql.TimeUUID()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return []models.Product{
		{ID: gocql.TimeUUID(), Name: "Sac à dos urbain", Price: 79.90, Stock: 12, CategoryID: catA, IsActive: true, CreatedAt: base},
		{ID: gocql.TimeUUID(), Name: "Bandoulière cuir", Price: 129.00, Stock: 0, CategoryID: catA, IsActive: true, CreatedAt: base.Add(24 * time.Hour)},
		{ID: gocql.TimeUUID(), Name: "Tote bag coton", Price: 19.50, Stock: 40, CategoryID: catB, IsActive: true, CreatedAt: base.Add(48 * time.Hour)},
		{ID: gocql.TimeUUID(), Name: "Valise cabine", Price: 189.00, Stock: 5, CategoryID: catB, IsActive: false, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func TestFilterProducts_ExcludesInactive(t *testing.T) {
	products := sampleProducts(t)

	got := FilterProducts(products, CatalogFilter{})

	require.Len(t, got, 3)
	for _, p := range got {
		require.True(t, p.IsActive)
	}
}

func TestFilterProducts_ByCategoryAndPrice(t *testing.T) {
	products := sampleProducts(t)
	catA := products[0].CategoryID.String()

	got := FilterProducts(products, CatalogFilter{CategoryID: catA, PriceMax: 100})

	require.Len(t, got, 1)
	require.Equal(t, "Sac à dos urbain", got[0].Name)
}

func TestFilterProducts_InStockOnly(t *testing.T) {
	products := sampleProducts(t)

	got := FilterProducts(products, CatalogFilter{InStock: true})

	require.Len(t, got, 2)
	for _, p := range got {
		require.Greater(t, p.Stock, 0)
	}
}

func TestSortProducts(t *testing.T) {
	products := FilterProducts(sampleProducts(t), CatalogFilter{})

	SortProducts(products, "price_asc")
	require.Equal(t, "Tote bag coton", products[0].Name)

	SortProducts(products, "price_desc")
	require.Equal(t, "Bandoulière cuir", products[0].Name)

	SortProducts(products, "newest")
	require.Equal(t, "Tote bag coton", products[0].Name)

	SortProducts(products, "name")
	require.Equal(t, "Bandoulière cuir", products[0].Name)
}

func TestPaginateProducts(t *testing.T) {
	products := FilterProducts(sampleProducts(t), CatalogFilter{})

	page1 := PaginateProducts(products, 1, 2)
	require.Len(t, page1, 2)

	page2 := PaginateProducts(products, 2, 2)
	require.Len(t, page2, 1)

	page3 := PaginateProducts(products, 3, 2)
	require.Empty(t, page3)

	// page et taille invalides retombent sur les défauts
	all := PaginateProducts(products, 0, 0)
	require.Len(t, all, 3)
}
