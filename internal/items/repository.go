package items

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists items.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Item, int, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, draft Draft) (Item, error)
	Update(ctx context.Context, id string, draft Draft) (Item, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q db.Querier
}

// NewRepository builds a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectColumns = `SELECT id, anunciante_id, nome_item, preco_diario, COALESCE(categoria, ''),
	COALESCE(observacoes, ''), COALESCE(foto_url, '') FROM item`

func scan(row interface{ Scan(...any) error }) (Item, error) {
	var (
		it   Item
		rate pgtype.Numeric
	)
	if err := row.Scan(&it.ID, &it.AdvertiserID, &it.Name, &rate, &it.Category, &it.Notes, &it.PhotoURL); err != nil {
		return Item{}, err
	}
	it.DailyRate = db.Decimal(rate)
	return it, nil
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Item, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND (nome_item ILIKE $1 OR observacoes ILIKE $1)`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM item`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("items: count: %w", err)
	}

	query := selectColumns + where + " ORDER BY " + sortOrder(filters)
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("items: list: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("items: scan: %w", err)
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return db.Count(ctx, r.q, "item")
}

func (r *repository) Get(ctx context.Context, id string) (Item, error) {
	it, err := scan(r.q.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		return Item{}, fmt.Errorf("items: get %s: %w", id, db.MapError(err))
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, d Draft) (Item, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`INSERT INTO item (id, anunciante_id, nome_item, preco_diario, categoria, observacoes, foto_url)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))`,
		id, d.AdvertiserID, d.Name, db.Numeric(d.DailyRate), d.Category, d.Notes, d.PhotoURL)
	if err != nil {
		return Item{}, fmt.Errorf("items: create: %w", db.MapError(err))
	}
	return d.item(id), nil
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Item, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE item SET anunciante_id = $2, nome_item = $3, preco_diario = $4, categoria = NULLIF($5, ''),
		 observacoes = NULLIF($6, ''), foto_url = NULLIF($7, ''), updated_at = NOW() WHERE id = $1`,
		id, d.AdvertiserID, d.Name, db.Numeric(d.DailyRate), d.Category, d.Notes, d.PhotoURL)
	if err != nil {
		return Item{}, fmt.Errorf("items: update %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return Item{}, fmt.Errorf("items: update %s: %w", id, db.ErrNoRows)
	}
	return d.item(id), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM item WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("items: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("items: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}

func sortOrder(filters shared.ListFilters) string {
	dir := "ASC"
	if filters.Desc() {
		dir = "DESC"
	}
	switch filters.SortBy {
	case "preco_diario":
		return "preco_diario " + dir + ", nome_item"
	case "categoria":
		return "categoria " + dir + " NULLS LAST, nome_item"
	default:
		return "nome_item " + dir
	}
}
