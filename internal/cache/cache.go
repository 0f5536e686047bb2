package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
)

const (
	SellerCacheTTL  = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetSellerFromCache récupère un vendeur depuis Redis ou ScyllaDB
func GetSellerFromCache(sellerID string) (*models.Seller, error) {
	ctx := context.Background()
	key := "seller:" + sellerID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var seller models.Seller
		if json.Unmarshal([]byte(data), &seller) == nil {
			return &seller, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetSellersSession()
	if err != nil {
		return nil, err
	}

	sid, err := uuid.Parse(sellerID)
	if err != nil {
		return nil, err
	}
	sellerUUID := gocql.UUID(sid)

	var seller models.Seller
	var deactivatedAt *time.Time
	err = session.Query(`SELECT email, name, shop_name, phone, is_active, is_verified, deactivation_reason, deactivated_at
		FROM sellers WHERE seller_id = ?`, sellerUUID).Scan(
		&seller.Email, &seller.Name, &seller.ShopName, &seller.Phone,
		&seller.IsActive, &seller.IsVerified, &seller.DeactivationReason, &deactivatedAt)
	if err != nil {
		return nil, err
	}
	seller.ID = sellerUUID
	seller.DeactivatedAt = deactivatedAt

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(seller)
	database.Redis.Set(ctx, key, jsonData, SellerCacheTTL)

	return &seller, nil
}

// InvalidateSellerCache invalide le cache d'un vendeur
func InvalidateSellerCache(sellerID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "seller:"+sellerID)
}

// GetProductNamesFromCache récupère plusieurs noms de produits
func GetProductNamesFromCache(productIDs []string) map[string]string {
	ctx := context.Background()
	result := make(map[string]string)
	missingIDs := []string{}

	// 1. Essayer de récupérer depuis Redis
	for _, productID := range productIDs {
		key := "product_name:" + productID
		name, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			result[productID] = name
		} else {
			missingIDs = append(missingIDs, productID)
		}
	}

	// 2. Récupérer les produits manquants depuis ScyllaDB
	if len(missingIDs) > 0 {
		session, err := database.GetProductsSession()
		if err == nil {
			for _, productID := range missingIDs {
				pid, err := uuid.Parse(productID)
				if err == nil {
					var name string
					err = session.Query("SELECT name FROM products WHERE product_id = ?", gocql.UUID(pid)).Scan(&name)
					if err == nil {
						result[productID] = name
						database.Redis.Set(ctx, "product_name:"+productID, name, ProductCacheTTL)
					}
				}
			}
		}
	}

	return result
}

// InvalidateProductCache invalide le cache d'un produit
func InvalidateProductCache(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID, "product_name:"+productID)
}
