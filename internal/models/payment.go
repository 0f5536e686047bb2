package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Payment est une entrée du registre de paiements vendeur, créée par un admin.
// Append-only côté vendeur : seules les actions admin créent/modifient des entrées.
type Payment struct {
	ID            gocql.UUID `json:"id" db:"payment_id"`
	SellerID      gocql.UUID `json:"seller_id" db:"seller_id"`
	SellerEmail   string     `json:"seller_email" db:"seller_email"`
	SellerName    string     `json:"seller_name" db:"seller_name"`
	Amount        float64    `json:"amount" db:"amount"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"` // virement, paypal, cheque
	TransactionID string     `json:"transaction_id,omitempty" db:"transaction_id"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	Status        string     `json:"status" db:"status"` // pending, completed, failed
	PaidBy        string     `json:"paid_by" db:"paid_by"`
	PaidAt        time.Time  `json:"paid_at" db:"paid_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
