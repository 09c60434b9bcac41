package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foundit/foundit-api/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemListFilter, limit, offset int) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, since time.Time, topPlaces int) (*domain.ItemStats, error)
}
