package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxTxKey struct{}

// PgxTxInfo holds the pgx transaction and ownership info.
type PgxTxInfo struct {
	Tx    pgx.Tx
	Owned bool
}

// WithPgxTx stores pgx transaction info in the context.
func WithPgxTx(ctx context.Context, tx pgx.Tx, owned bool) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, PgxTxInfo{Tx: tx, Owned: owned})
}

// PgxTxInfoFromContext extracts pgx transaction info from the context.
func PgxTxInfoFromContext(ctx context.Context) (PgxTxInfo, bool) {
	info, ok := ctx.Value(pgxTxKey{}).(PgxTxInfo)
	if !ok || info.Tx == nil {
		return PgxTxInfo{}, false
	}
	return info, true
}

// PgxQuerier abstracts *pgxpool.Pool and pgx.Tx for shared query execution.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgxExecutor returns the transaction from context when present, otherwise the pool.
func PgxExecutor(ctx context.Context, pool *pgxpool.Pool) PgxQuerier {
	if info, ok := PgxTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return pool
}

// PostgresUnitOfWork provides transactional support for PostgreSQL.
type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPostgresUnitOfWork creates a new PostgresUnitOfWork.
func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Begin starts a transaction and stores it in the context. Nested calls
// reuse the outer transaction without taking ownership of it.
func (u *PostgresUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := PgxTxInfoFromContext(ctx); ok {
		return WithPgxTx(ctx, info.Tx, false), nil
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return WithPgxTx(ctx, tx, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *PostgresUnitOfWork) Commit(ctx context.Context) error {
	info, ok := PgxTxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Commit(ctx)
}

// Rollback rolls back the transaction if this unit owns it.
func (u *PostgresUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := PgxTxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Rollback(ctx)
}
