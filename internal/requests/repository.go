package requests

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists item requests.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Request, int, error)
	Get(ctx context.Context, id string) (Request, error)
	Create(ctx context.Context, draft Draft) (Request, error)
	Update(ctx context.Context, id string, draft Draft) (Request, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q db.Querier
}

// NewRepository builds a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectColumns = `SELECT id, usuario_id, nome_item, COALESCE(foto_url, ''), pretende_pagar_diario,
	COALESCE(observacoes, '') FROM requisicao`

func scan(row interface{ Scan(...any) error }) (Request, error) {
	var (
		req  Request
		rate pgtype.Numeric
	)
	if err := row.Scan(&req.ID, &req.RequesterID, &req.ItemName, &req.PhotoURL, &rate, &req.Notes); err != nil {
		return Request{}, err
	}
	req.IntendedDailyRate = db.DecimalPtr(rate)
	return req, nil
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Request, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND nome_item ILIKE $1`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM requisicao`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("requests: count: %w", err)
	}

	dir := "ASC"
	if filters.Desc() {
		dir = "DESC"
	}
	order := "nome_item " + dir
	if filters.SortBy == "pretende_pagar" {
		order = "pretende_pagar_diario " + dir + " NULLS LAST, nome_item"
	}
	query := selectColumns + where + " ORDER BY " + order
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("requests: list: %w", err)
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("requests: scan: %w", err)
		}
		out = append(out, req)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Request, error) {
	req, err := scan(r.q.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		return Request{}, fmt.Errorf("requests: get %s: %w", id, db.MapError(err))
	}
	return req, nil
}

func (r *repository) Create(ctx context.Context, d Draft) (Request, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`INSERT INTO requisicao (id, usuario_id, nome_item, foto_url, pretende_pagar_diario, observacoes)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))`,
		id, d.RequesterID, d.ItemName, d.PhotoURL, db.NumericPtr(d.IntendedDailyRate), d.Notes)
	if err != nil {
		return Request{}, fmt.Errorf("requests: create: %w", db.MapError(err))
	}
	return d.request(id), nil
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Request, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE requisicao SET usuario_id = $2, nome_item = $3, foto_url = NULLIF($4, ''),
		 pretende_pagar_diario = $5, observacoes = NULLIF($6, ''), updated_at = NOW() WHERE id = $1`,
		id, d.RequesterID, d.ItemName, d.PhotoURL, db.NumericPtr(d.IntendedDailyRate), d.Notes)
	if err != nil {
		return Request{}, fmt.Errorf("requests: update %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return Request{}, fmt.Errorf("requests: update %s: %w", id, db.ErrNoRows)
	}
	return d.request(id), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM requisicao WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("requests: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("requests: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}
