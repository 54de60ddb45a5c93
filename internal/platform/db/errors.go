package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

// ErrNoRows reports a write that matched no row.
var ErrNoRows = fmt.Errorf("platform/db: no rows affected: %w", httpx.ErrNotFound)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// MapError translates driver errors into the httpx sentinels, keeping the
// original error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", httpx.ErrDuplicate, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", httpx.ErrConflict, pgErr.ConstraintName)
		}
	}
	return err
}
