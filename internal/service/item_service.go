package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/repository/ports"
)

var ErrItemNotFound = errors.New("item not found")

const (
	defaultItemPageSize = 50
	maxItemPageSize     = 200
	statsWindow         = 7 * 24 * time.Hour
	statsTopPlaces      = 5
)

// ItemInput carries the writable fields of a found item.
type ItemInput struct {
	Name       string
	DateFound  time.Time
	PlaceFound string
	FoundBy    string
	PhoneNo    string
}

type ItemService struct {
	items ports.ItemRepository
	now   func() time.Time
}

func NewItemService(items ports.ItemRepository) *ItemService {
	return &ItemService{items: items, now: time.Now}
}

func (s *ItemService) Create(ctx context.Context, input ItemInput) (*domain.Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return nil, err
	}
	return s.items.Create(ctx, item)
}

func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, filter domain.ItemListFilter, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = defaultItemPageSize
	}
	if limit > maxItemPageSize {
		limit = maxItemPageSize
	}
	if offset < 0 {
		offset = 0
	}

	filter.Search = strings.TrimSpace(filter.Search)
	places := make([]string, 0, len(filter.Places))
	for _, place := range filter.Places {
		if trimmed := strings.ToLower(strings.TrimSpace(place)); trimmed != "" {
			places = append(places, trimmed)
		}
	}
	filter.Places = places

	return s.items.List(ctx, filter, limit, offset)
}

func (s *ItemService) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*domain.Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return nil, err
	}
	item.ID = id

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *ItemService) Stats(ctx context.Context) (*domain.ItemStats, error) {
	return s.items.Stats(ctx, s.now().Add(-statsWindow), statsTopPlaces)
}

func buildItem(input ItemInput) (*domain.Item, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	place := strings.ToLower(strings.TrimSpace(input.PlaceFound))
	foundBy := strings.TrimSpace(input.FoundBy)
	phone := strings.TrimSpace(input.PhoneNo)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if input.DateFound.IsZero() {
		missing = append(missing, "date_found")
	}
	if place == "" {
		missing = append(missing, "place_found")
	}
	if foundBy == "" {
		missing = append(missing, "found_by")
	}
	if phone == "" {
		missing = append(missing, "phone_no")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	return &domain.Item{
		Name:       name,
		DateFound:  input.DateFound,
		PlaceFound: place,
		FoundBy:    foundBy,
		PhoneNo:    phone,
	}, nil
}
