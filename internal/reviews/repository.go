package reviews

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists reviews. Reads join the item and reviewer names.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Review, int, error)
	ListByItem(ctx context.Context, itemID string) ([]Review, error)
	Get(ctx context.Context, id string) (Review, error)
	Create(ctx context.Context, draft Draft) (Review, error)
	Update(ctx context.Context, id string, draft Draft) (Review, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q db.Querier
}

// NewRepository builds a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectJoined = `SELECT a.id, a.avaliador_id, COALESCE(p.nome_pessoa, ''), a.item_id, COALESCE(i.nome_item, ''),
	a.estrelas, COALESCE(a.comentario, '')
	FROM avaliacao a
	LEFT JOIN item i ON i.id = a.item_id
	LEFT JOIN pessoa p ON p.id = a.avaliador_id`

func scan(row interface{ Scan(...any) error }) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.ReviewerID, &r.ReviewerName, &r.ItemID, &r.ItemName, &r.Stars, &r.Comment)
	return r, err
}

func (r *repository) query(ctx context.Context, sql string, args ...any) ([]Review, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		rev, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Review, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND (i.nome_item ILIKE $1 OR a.comentario ILIKE $1)`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM avaliacao a LEFT JOIN item i ON i.id = a.item_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("reviews: count: %w", err)
	}

	dir := "DESC"
	if filters.SortDir == shared.SortAsc {
		dir = "ASC"
	}
	order := "a.created_at " + dir + ", a.id"
	if filters.SortBy == "estrelas" {
		order = "a.estrelas " + dir + ", a.id"
	}
	query := selectJoined + where + " ORDER BY " + order
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	out, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("reviews: list: %w", err)
	}
	return out, total, nil
}

func (r *repository) ListByItem(ctx context.Context, itemID string) ([]Review, error) {
	out, err := r.query(ctx, selectJoined+` WHERE a.item_id = $1 ORDER BY a.created_at DESC, a.id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("reviews: list by item %s: %w", itemID, err)
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Review, error) {
	rev, err := scan(r.q.QueryRow(ctx, selectJoined+` WHERE a.id = $1`, id))
	if err != nil {
		return Review{}, fmt.Errorf("reviews: get %s: %w", id, db.MapError(err))
	}
	return rev, nil
}

func (r *repository) Create(ctx context.Context, d Draft) (Review, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`INSERT INTO avaliacao (id, avaliador_id, item_id, estrelas, comentario) VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		id, d.ReviewerID, d.ItemID, d.Stars, d.Comment)
	if err != nil {
		return Review{}, fmt.Errorf("reviews: create: %w", db.MapError(err))
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Review, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE avaliacao SET avaliador_id = $2, item_id = $3, estrelas = $4, comentario = NULLIF($5, ''),
		 updated_at = NOW() WHERE id = $1`,
		id, d.ReviewerID, d.ItemID, d.Stars, d.Comment)
	if err != nil {
		return Review{}, fmt.Errorf("reviews: update %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return Review{}, fmt.Errorf("reviews: update %s: %w", id, db.ErrNoRows)
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM avaliacao WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reviews: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reviews: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}
