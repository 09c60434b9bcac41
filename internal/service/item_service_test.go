package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foundit/foundit-api/internal/domain"
)

type fakeItemRepo struct {
	createInput  *domain.Item
	createResult *domain.Item
	createErr    error

	findInput  uuid.UUID
	findResult *domain.Item
	findErr    error

	listInput struct {
		filter domain.ItemListFilter
		limit  int
		offset int
	}
	listResult []domain.Item
	listErr    error

	updateInput  *domain.Item
	updateResult *domain.Item
	updateErr    error

	deleteInput uuid.UUID
	deleteErr   error

	statsInput struct {
		since     time.Time
		topPlaces int
	}
	statsResult *domain.ItemStats
	statsErr    error
}

func (f *fakeItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	clone := *item
	f.createInput = &clone
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	created := *item
	created.ID = uuid.New()
	return &created, nil
}

func (f *fakeItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	f.findInput = id
	return f.findResult, f.findErr
}

func (f *fakeItemRepo) List(ctx context.Context, filter domain.ItemListFilter, limit, offset int) ([]domain.Item, error) {
	f.listInput.filter = filter
	f.listInput.limit = limit
	f.listInput.offset = offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Item(nil), f.listResult...), nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	clone := *item
	f.updateInput = &clone
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &clone, nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteInput = id
	return f.deleteErr
}

func (f *fakeItemRepo) Stats(ctx context.Context, since time.Time, topPlaces int) (*domain.ItemStats, error) {
	f.statsInput.since = since
	f.statsInput.topPlaces = topPlaces
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.statsResult != nil {
		return f.statsResult, nil
	}
	return &domain.ItemStats{}, nil
}

func validItemInput() ItemInput {
	return ItemInput{
		Name:       "Blue Backpack",
		DateFound:  time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		PlaceFound: "Main Library",
		FoundBy:    "Bob",
		PhoneNo:    "555-0101",
	}
}

func TestItemCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := NewItemService(repo)

		item, err := svc.Create(ctx, validItemInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.createInput.Name != "blue backpack" {
			t.Fatalf("expected lowercased name, got %q", repo.createInput.Name)
		}
		if repo.createInput.PlaceFound != "main library" {
			t.Fatalf("expected lowercased place, got %q", repo.createInput.PlaceFound)
		}
		if item.ID == uuid.Nil {
			t.Fatalf("expected assigned id")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*ItemInput)
		}{
			{"name", func(in *ItemInput) { in.Name = "  " }},
			{"date_found", func(in *ItemInput) { in.DateFound = time.Time{} }},
			{"place_found", func(in *ItemInput) { in.PlaceFound = "" }},
			{"found_by", func(in *ItemInput) { in.FoundBy = "" }},
			{"phone_no", func(in *ItemInput) { in.PhoneNo = " " }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validItemInput()
				tc.mutate(&input)
				svc := NewItemService(&fakeItemRepo{})
				if _, err := svc.Create(ctx, input); !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation for missing %s, got %v", tc.name, err)
				}
			})
		}
	})
}

func TestItemGet(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := &fakeItemRepo{findResult: &domain.Item{ID: id, Name: "blue backpack"}}
		svc := NewItemService(repo)
		item, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.ID != id {
			t.Fatalf("unexpected item returned")
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo := &fakeItemRepo{findErr: sql.ErrNoRows}
		svc := NewItemService(repo)
		if _, err := svc.Get(ctx, id); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemList(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and clamps", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := NewItemService(repo)
		if _, err := svc.List(ctx, domain.ItemListFilter{}, 0, -5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listInput.limit != defaultItemPageSize || repo.listInput.offset != 0 {
			t.Fatalf("expected defaults, got limit=%d offset=%d", repo.listInput.limit, repo.listInput.offset)
		}

		if _, err := svc.List(ctx, domain.ItemListFilter{}, 1000, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listInput.limit != maxItemPageSize {
			t.Fatalf("expected limit clamped to %d, got %d", maxItemPageSize, repo.listInput.limit)
		}
	})

	t.Run("sanitizes filter", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := NewItemService(repo)
		filter := domain.ItemListFilter{
			Search: "  backpack  ",
			Places: []string{" Main Library ", "", "Cafeteria"},
		}
		if _, err := svc.List(ctx, filter, 10, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listInput.filter.Search != "backpack" {
			t.Fatalf("expected trimmed search, got %q", repo.listInput.filter.Search)
		}
		want := []string{"main library", "cafeteria"}
		if len(repo.listInput.filter.Places) != len(want) {
			t.Fatalf("expected %d places, got %v", len(want), repo.listInput.filter.Places)
		}
		for i, place := range want {
			if repo.listInput.filter.Places[i] != place {
				t.Fatalf("expected place %q at %d, got %q", place, i, repo.listInput.filter.Places[i])
			}
		}
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := &fakeItemRepo{listErr: errors.New("db down")}
		svc := NewItemService(repo)
		if _, err := svc.List(ctx, domain.ItemListFilter{}, 10, 0); err == nil {
			t.Fatalf("expected error from repository")
		}
	})
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := NewItemService(repo)
		updated, err := svc.Update(ctx, id, validItemInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updateInput.ID != id {
			t.Fatalf("expected update for item %s", id)
		}
		if updated.Name != "blue backpack" {
			t.Fatalf("expected normalized name, got %q", updated.Name)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		repo := &fakeItemRepo{updateErr: sql.ErrNoRows}
		svc := NewItemService(repo)
		if _, err := svc.Update(ctx, id, validItemInput()); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := NewItemService(&fakeItemRepo{})
		input := validItemInput()
		input.Name = ""
		if _, err := svc.Update(ctx, id, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestItemDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := NewItemService(repo)
		if err := svc.Delete(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.deleteInput != id {
			t.Fatalf("expected delete for item %s", id)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		repo := &fakeItemRepo{deleteErr: sql.ErrNoRows}
		svc := NewItemService(repo)
		if err := svc.Delete(ctx, id); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemStats(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeItemRepo{statsResult: &domain.ItemStats{TotalItems: 12, ItemsThisWeek: 3}}
	svc := NewItemService(repo)
	svc.now = func() time.Time { return fixed }

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalItems != 12 || stats.ItemsThisWeek != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !repo.statsInput.since.Equal(fixed.Add(-7 * 24 * time.Hour)) {
		t.Fatalf("expected 7 day window, got since=%v", repo.statsInput.since)
	}
	if repo.statsInput.topPlaces != statsTopPlaces {
		t.Fatalf("expected top places %d, got %d", statsTopPlaces, repo.statsInput.topPlaces)
	}
}
