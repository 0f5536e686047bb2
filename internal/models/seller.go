package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Seller struct {
	ID                 gocql.UUID `json:"id" db:"seller_id"`
	Email              string     `json:"email" db:"email"`
	Password           string     `json:"-" db:"password"`
	Name               string     `json:"name" db:"name"`
	ShopName           string     `json:"shop_name" db:"shop_name"`
	Phone              string     `json:"phone,omitempty" db:"phone"`
	BusinessNumber     string     `json:"business_number,omitempty" db:"business_number"`
	IBAN               string     `json:"iban,omitempty" db:"iban"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	IsVerified         bool       `json:"is_verified" db:"is_verified"`
	DeactivationReason string     `json:"deactivation_reason,omitempty" db:"deactivation_reason"`
	DeactivatedAt      *time.Time `json:"deactivated_at,omitempty" db:"deactivated_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
