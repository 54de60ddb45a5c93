package rentals

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/pricing"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists rentals. Reads always join the item and tenant.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Rental, int, error)
	Get(ctx context.Context, id string) (Rental, error)
	Create(ctx context.Context, draft Draft) (Rental, error)
	Update(ctx context.Context, id string, draft Draft) (Rental, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q   db.Querier
	loc *time.Location
}

// NewRepository builds a pgx backed Repository. Dates are read as local
// midnight in loc.
func NewRepository(q db.Querier, loc *time.Location) Repository {
	return &repository{q: q, loc: loc}
}

const selectJoined = `SELECT l.id, l.item_id, COALESCE(i.nome_item, ''), l.data_inicio::text, l.data_fim::text,
	l.status_pagamento, l.locatario_id, COALESCE(p.nome_pessoa, ''), i.preco_diario
	FROM locacao l
	LEFT JOIN item i ON i.id = l.item_id
	LEFT JOIN pessoa p ON p.id = l.locatario_id`

func (r *repository) scan(row pgx.Row) (Rental, error) {
	var (
		out        Rental
		start, end string
		status     string
		rate       pgtype.Numeric
	)
	if err := row.Scan(&out.ID, &out.ItemID, &out.ItemName, &start, &end, &status, &out.TenantID, &out.TenantName, &rate); err != nil {
		return Rental{}, err
	}
	var err error
	if out.StartDate, err = pricing.ParseDate(start, r.loc); err != nil {
		return Rental{}, err
	}
	if out.EndDate, err = pricing.ParseDate(end, r.loc); err != nil {
		return Rental{}, err
	}
	out.PaymentStatus = PaymentStatus(status)
	out.DailyRate = db.Decimal(rate)
	return out, nil
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Rental, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND (i.nome_item ILIKE $1 OR p.nome_pessoa ILIKE $1)`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM locacao l LEFT JOIN item i ON i.id = l.item_id LEFT JOIN pessoa p ON p.id = l.locatario_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("rentals: count: %w", err)
	}

	query := selectJoined + where + " ORDER BY " + sortOrder(filters)
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("rentals: list: %w", err)
	}
	defer rows.Close()

	var out []Rental
	for rows.Next() {
		rental, err := r.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("rentals: scan: %w", err)
		}
		out = append(out, rental)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Rental, error) {
	rental, err := r.scan(r.q.QueryRow(ctx, selectJoined+` WHERE l.id = $1`, id))
	if err != nil {
		return Rental{}, fmt.Errorf("rentals: get %s: %w", id, db.MapError(err))
	}
	return rental, nil
}

// Create inserts the rental and reads it back joined, in one transaction.
func (r *repository) Create(ctx context.Context, d Draft) (Rental, error) {
	id := uuid.NewString()
	var out Rental
	err := db.InTx(ctx, r.q, func(tx db.Querier) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO locacao (id, item_id, data_inicio, data_fim, status_pagamento, locatario_id)
			 VALUES ($1, $2, $3::date, $4::date, $5, $6)`,
			id, d.ItemID, d.StartDate, d.EndDate, string(d.PaymentStatus), d.TenantID); err != nil {
			return err
		}
		var err error
		out, err = r.scan(tx.QueryRow(ctx, selectJoined+` WHERE l.id = $1`, id))
		return err
	})
	if err != nil {
		return Rental{}, fmt.Errorf("rentals: create: %w", db.MapError(err))
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Rental, error) {
	var out Rental
	err := db.InTx(ctx, r.q, func(tx db.Querier) error {
		tag, err := tx.Exec(ctx,
			`UPDATE locacao SET item_id = $2, data_inicio = $3::date, data_fim = $4::date,
			 status_pagamento = $5, locatario_id = $6, updated_at = NOW() WHERE id = $1`,
			id, d.ItemID, d.StartDate, d.EndDate, string(d.PaymentStatus), d.TenantID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return db.ErrNoRows
		}
		out, err = r.scan(tx.QueryRow(ctx, selectJoined+` WHERE l.id = $1`, id))
		return err
	})
	if err != nil {
		return Rental{}, fmt.Errorf("rentals: update %s: %w", id, db.MapError(err))
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locacao WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rentals: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rentals: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}

func sortOrder(filters shared.ListFilters) string {
	dir := "DESC"
	if filters.SortDir == shared.SortAsc {
		dir = "ASC"
	}
	switch filters.SortBy {
	case "status_pagamento":
		return "l.status_pagamento " + dir + ", l.data_inicio DESC"
	case "item":
		return "i.nome_item " + dir + ", l.data_inicio DESC"
	default:
		return "l.data_inicio " + dir + ", l.id"
	}
}
