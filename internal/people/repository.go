package people

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Repository persists people.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Person, int, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (Person, error)
	Create(ctx context.Context, draft Draft) (Person, error)
	Update(ctx context.Context, id string, draft Draft) (Person, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	q db.Querier
}

// NewRepository builds a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectColumns = `SELECT id, nome_pessoa, COALESCE(email, ''), telefone, COALESCE(condominio_id, ''), apartamento FROM pessoa`

func scan(row interface{ Scan(...any) error }) (Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CondominiumID, &p.Apartment)
	return p, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Person, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND (nome_pessoa ILIKE $1 OR apartamento ILIKE $1 OR email ILIKE $1)`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pessoa`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("people: count: %w", err)
	}

	query := selectColumns + where + " ORDER BY " + sortOrder(filters)
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("people: list: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("people: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return db.Count(ctx, r.q, "pessoa")
}

func (r *repository) Get(ctx context.Context, id string) (Person, error) {
	p, err := scan(r.q.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		return Person{}, fmt.Errorf("people: get %s: %w", id, db.MapError(err))
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, d Draft) (Person, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`INSERT INTO pessoa (id, nome_pessoa, email, telefone, condominio_id, apartamento)
		 VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6)`,
		id, d.Name, d.Email, d.Phone, d.CondominiumID, d.Apartment)
	if err != nil {
		return Person{}, fmt.Errorf("people: create: %w", db.MapError(err))
	}
	return Person{ID: id, Name: d.Name, Email: d.Email, Phone: d.Phone, CondominiumID: d.CondominiumID, Apartment: d.Apartment}, nil
}

func (r *repository) Update(ctx context.Context, id string, d Draft) (Person, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE pessoa SET nome_pessoa = $2, email = NULLIF($3, ''), telefone = $4,
		 condominio_id = NULLIF($5, ''), apartamento = $6, updated_at = NOW() WHERE id = $1`,
		id, d.Name, d.Email, d.Phone, d.CondominiumID, d.Apartment)
	if err != nil {
		return Person{}, fmt.Errorf("people: update %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return Person{}, fmt.Errorf("people: update %s: %w", id, db.ErrNoRows)
	}
	return Person{ID: id, Name: d.Name, Email: d.Email, Phone: d.Phone, CondominiumID: d.CondominiumID, Apartment: d.Apartment}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pessoa WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("people: delete %s: %w", id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("people: delete %s: %w", id, db.ErrNoRows)
	}
	return nil
}

func sortOrder(filters shared.ListFilters) string {
	dir := "ASC"
	if filters.Desc() {
		dir = "DESC"
	}
	switch filters.SortBy {
	case "apartamento":
		return "apartamento " + dir + ", nome_pessoa"
	default:
		return "nome_pessoa " + dir
	}
}
