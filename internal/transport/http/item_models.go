package http

import (
	"fmt"
	"time"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/service"
)

// ItemRequest carries the writable fields of a found item. date_found accepts
// either a calendar date (2006-01-02) or a full RFC 3339 timestamp.
type ItemRequest struct {
	Name       string `json:"name" example:"blue backpack"`
	DateFound  string `json:"date_found" example:"2025-05-20"`
	PlaceFound string `json:"place_found" example:"main library"`
	FoundBy    string `json:"found_by" example:"Bob"`
	PhoneNo    string `json:"phone_no" example:"555-0101"`
}

// ItemResponse is the item projection returned by every item endpoint.
type ItemResponse struct {
	ID         string    `json:"id" example:"53aa35c8-e659-44b2-882f-f6056e443c99"`
	Name       string    `json:"name" example:"blue backpack"`
	DateFound  string    `json:"date_found" example:"2025-05-20"`
	PlaceFound string    `json:"place_found" example:"main library"`
	FoundBy    string    `json:"found_by" example:"Bob"`
	PhoneNo    string    `json:"phone_no" example:"555-0101"`
	CreatedAt  time.Time `json:"created_at" example:"2025-05-20T15:04:05Z"`
	UpdatedAt  time.Time `json:"updated_at" example:"2025-05-20T15:04:05Z"`
}

// ItemListResponse wraps a page of items.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Limit  int            `json:"limit" example:"50"`
	Offset int            `json:"offset" example:"0"`
}

// ItemStatsResponse summarizes the registry for the dashboard.
type ItemStatsResponse struct {
	TotalItems    int64            `json:"total_items" example:"128"`
	ItemsThisWeek int64            `json:"items_this_week" example:"9"`
	TopPlaces     []PlaceCountItem `json:"top_places"`
}

// PlaceCountItem pairs a place with how many items were found there.
type PlaceCountItem struct {
	Place string `json:"place" example:"main library"`
	Count int64  `json:"count" example:"17"`
}

func (r ItemRequest) toInput() (service.ItemInput, error) {
	dateFound, err := parseDateFound(r.DateFound)
	if err != nil {
		return service.ItemInput{}, err
	}
	return service.ItemInput{
		Name:       r.Name,
		DateFound:  dateFound,
		PlaceFound: r.PlaceFound,
		FoundBy:    r.FoundBy,
		PhoneNo:    r.PhoneNo,
	}, nil
}

func parseDateFound(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("date_found must be YYYY-MM-DD or RFC 3339, got %q", raw)
}

func buildItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		DateFound:  item.DateFound.Format("2006-01-02"),
		PlaceFound: item.PlaceFound,
		FoundBy:    item.FoundBy,
		PhoneNo:    item.PhoneNo,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func buildItemListResponse(items []domain.Item, limit, offset int) ItemListResponse {
	out := ItemListResponse{
		Items:  make([]ItemResponse, 0, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for i := range items {
		out.Items = append(out.Items, buildItemResponse(&items[i]))
	}
	return out
}

func buildItemStatsResponse(stats *domain.ItemStats) ItemStatsResponse {
	out := ItemStatsResponse{
		TotalItems:    stats.TotalItems,
		ItemsThisWeek: stats.ItemsThisWeek,
		TopPlaces:     make([]PlaceCountItem, 0, len(stats.TopPlaces)),
	}
	for _, place := range stats.TopPlaces {
		out.TopPlaces = append(out.TopPlaces, PlaceCountItem{Place: place.Place, Count: place.Count})
	}
	return out
}
