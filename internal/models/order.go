package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Order struct {
	ID              gocql.UUID  `json:"id" db:"order_id"`
	OrderNumber     string      `json:"order_number" db:"order_number"`
	CustomerName    string      `json:"customer_name" db:"customer_name"`
	CustomerEmail   string      `json:"customer_email" db:"customer_email"`
	CustomerPhone   string      `json:"customer_phone" db:"customer_phone"`
	ShippingAddress string      `json:"shipping_address" db:"shipping_address"`
	Status          string      `json:"status" db:"status"` // pending, processing, confirmed, shipped, delivered, cancelled, returned
	Items           []OrderItem `json:"items" db:"items"`
	TotalAmount     float64     `json:"total_amount" db:"total_amount"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem fige le prix unitaire au moment de la commande (immutable ensuite)
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	SellerID    string  `json:"seller_id"`
	SellerEmail string  `json:"seller_email"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
