package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/foundit/foundit-api/internal/domain"
)

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepo(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, date_found, place_found, found_by, phone_no, created_at, updated_at`

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	const query = `
        INSERT INTO item (name, date_found, place_found, found_by, phone_no)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + itemColumns

	row := r.db.QueryRowxContext(ctx, query, item.Name, item.DateFound, item.PlaceFound, item.FoundBy, item.PhoneNo)
	var created domain.Item
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM item WHERE id = $1`
	var item domain.Item
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) List(ctx context.Context, filter domain.ItemListFilter, limit, offset int) ([]domain.Item, error) {
	var (
		conditions []string
		args       []any
	)

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE "+placeholder+" OR place_found ILIKE "+placeholder+")")
	}
	if len(filter.Places) > 0 {
		args = append(args, pq.Array(filter.Places))
		conditions = append(conditions, "place_found = ANY($"+strconv.Itoa(len(args))+")")
	}

	query := `SELECT ` + itemColumns + ` FROM item`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	items := []domain.Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	const query = `
        UPDATE item
        SET name = $2,
            date_found = $3,
            place_found = $4,
            found_by = $5,
            phone_no = $6,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + itemColumns

	row := r.db.QueryRowxContext(ctx, query, item.ID, item.Name, item.DateFound, item.PlaceFound, item.FoundBy, item.PhoneNo)
	var updated domain.Item
	if err := row.StructScan(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM item WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ItemRepository) Stats(ctx context.Context, since time.Time, topPlaces int) (*domain.ItemStats, error) {
	const countQuery = `
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE created_at >= $1) AS recent
        FROM item
    `
	var counts struct {
		Total  int64 `db:"total"`
		Recent int64 `db:"recent"`
	}
	if err := r.db.GetContext(ctx, &counts, countQuery, since); err != nil {
		return nil, err
	}

	const placesQuery = `
        SELECT place_found, COUNT(*) AS count
        FROM item
        GROUP BY place_found
        ORDER BY count DESC, place_found ASC
        LIMIT $1
    `
	places := []domain.PlaceCount{}
	if err := r.db.SelectContext(ctx, &places, placesQuery, topPlaces); err != nil {
		return nil, err
	}

	return &domain.ItemStats{
		TotalItems:    counts.Total,
		ItemsThisWeek: counts.Recent,
		TopPlaces:     places,
	}, nil
}
