package domain

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	DateFound  time.Time `db:"date_found" json:"date_found"`
	PlaceFound string    `db:"place_found" json:"place_found"`
	FoundBy    string    `db:"found_by" json:"found_by"`
	PhoneNo    string    `db:"phone_no" json:"phone_no"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ItemListFilter narrows the shared item list. Search matches a substring of
// the item name or place; Places restricts to an exact place set.
type ItemListFilter struct {
	Search string
	Places []string
}

type PlaceCount struct {
	Place string `db:"place_found" json:"place"`
	Count int64  `db:"count" json:"count"`
}

// ItemStats backs the dashboard numbers.
type ItemStats struct {
	TotalItems    int64        `json:"total_items"`
	ItemsThisWeek int64        `json:"items_this_week"`
	TopPlaces     []PlaceCount `json:"top_places"`
}
