package models

import (
	"time"

	"github.com/gocql/gocql"
)

// HomepageSection pilote le contenu de la page d'accueil (bannières, sélections)
type HomepageSection struct {
	ID        gocql.UUID `json:"id" db:"section_id"`
	Kind      string     `json:"kind" db:"kind"` // "banner", "featured_products", "featured_categories", "text"
	Title     string     `json:"title" db:"title"`
	Payload   string     `json:"payload" db:"payload"` // JSON libre selon le kind
	Position  int        `json:"position" db:"position"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
