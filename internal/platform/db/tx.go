package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxBeginner starts transactions. *pgxpool.Pool and *pgx.Conn satisfy it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

var _ TxBeginner = (*pgxpool.Pool)(nil)

// WithTx runs fn in a read-committed transaction. The transaction is rolled
// back when fn fails and committed otherwise.
func WithTx(ctx context.Context, b TxBeginner, fn func(pgx.Tx) error) error {
	return WithTxOptions(ctx, b, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithTxOptions is WithTx with explicit transaction options.
func WithTxOptions(ctx context.Context, b TxBeginner, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	tx, err := b.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("platform/db: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("platform/db: commit tx: %w", err)
	}
	return nil
}

// InTx runs fn inside a new transaction when q can begin one, and directly on
// q otherwise, e.g. when q already is a pgx.Tx.
func InTx(ctx context.Context, q Querier, fn func(Querier) error) error {
	b, ok := q.(TxBeginner)
	if !ok {
		return fn(q)
	}
	return WithTx(ctx, b, func(tx pgx.Tx) error { return fn(tx) })
}
