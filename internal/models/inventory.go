package models

import (
	"time"

	"github.com/gocql/gocql"
)

type StockMovement struct {
	ID        gocql.UUID  `json:"id"`
	ProductID gocql.UUID  `json:"product_id"`
	Type      string      `json:"type"` // "sale", "restock", "adjustment", "cancel_restore", "return_restore"
	Quantity  int         `json:"quantity"`
	PrevStock int         `json:"prev_stock"`
	NewStock  int         `json:"new_stock"`
	Reason    string      `json:"reason"`
	OrderID   *gocql.UUID `json:"order_id,omitempty"`
	Actor     string      `json:"actor"`
	CreatedAt time.Time   `json:"created_at"`
}

type SellerStats struct {
	TotalProducts      int            `json:"total_products"`
	LowStockProducts   int            `json:"low_stock_products"`
	OutOfStockProducts int            `json:"out_of_stock_products"`
	StockValue         float64        `json:"stock_value"`
	OrdersByStatus     map[string]int `json:"orders_by_status"`
	Revenue            float64        `json:"revenue"`
	TotalReceived      float64        `json:"total_received"`
}
