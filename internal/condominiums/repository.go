package condominiums

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists condominiums.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Condominium, int, error)
	Get(ctx context.Context, id string) (Condominium, error)
	Create(ctx context.Context, draft Draft) (Condominium, error)
	Update(ctx context.Context, id string, draft Draft) (Condominium, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q db.Querier
}

// NewRepository builds a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Condominium, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND (nome ILIKE $1 OR endereco ILIKE $1)`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM condominio`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("condominiums: count: %w", err)
	}

	dir := "ASC"
	if filters.Desc() {
		dir = "DESC"
	}
	query := `SELECT id, nome, endereco, foto_url FROM condominio` + where + ` ORDER BY nome ` + dir
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("condominiums: list: %w", err)
	}
	defer rows.Close()

	var out []Condominium
	for rows.Next() {
		var c Condominium
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.PhotoURL); err != nil {
			return nil, 0, fmt.Errorf("condominiums: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Condominium, error) {
	var c Condominium
	err := r.q.QueryRow(ctx, `SELECT id, nome, endereco, foto_url FROM condominio WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.PhotoURL)
	if err != nil {
		return Condominium{}, fmt.Errorf("condominiums: get %s: %w", id, db.MapError(err))
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, d Draft) (Condominium, error) {
	id := uuid.NewString()
	if _, err := r.q.Exec(ctx, `INSERT INTO condominio (id, nome, endereco, foto_url) VALUES ($1, $2, $3, $4)`,
		id, d.Name, d.Address, d.PhotoURL); err != nil {
		return Condominium{}, fmt.Errorf("condominiums: create: %w", db.MapError(err))
	}
	return Condominium{ID: id, Name: d.Name, Address: d.Address, PhotoURL: d.PhotoURL}, nil
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Condominium, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE condominio SET nome = $2, endereco = $3, foto_url = $4, updated_at = NOW() WHERE id = $1`,
		id, d.Name, d.Address, d.PhotoURL)
	if err != nil {
		return Condominium{}, fmt.Errorf("condominiums: update %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return Condominium{}, fmt.Errorf("condominiums: update %s: %w", id, db.ErrNoRows)
	}
	return Condominium{ID: id, Name: d.Name, Address: d.Address, PhotoURL: d.PhotoURL}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM condominio WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("condominiums: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("condominiums: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}
