package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Return struct {
	ID            gocql.UUID `json:"id" db:"return_id"`
	OrderNumber   string     `json:"order_number" db:"order_number"`
	ProductID     gocql.UUID `json:"product_id" db:"product_id"`
	SellerEmail   string     `json:"seller_email" db:"seller_email"`
	CustomerEmail string     `json:"customer_email" db:"customer_email"`
	Quantity      int        `json:"quantity" db:"quantity"`
	Price         float64    `json:"price" db:"price"`
	Reason        string     `json:"reason" db:"reason"`
	Description   string     `json:"description,omitempty" db:"description"`
	Status        string     `json:"status" db:"status"` // pending, approved, rejected, completed
	ReturnedAt    *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
