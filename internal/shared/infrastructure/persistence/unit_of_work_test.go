package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countNotes(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n))
	return n
}

func TestSQLiteUnitOfWork_CommitPersists(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	ctx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	_, err = SQLiteExecutor(ctx, db).ExecContext(ctx, `INSERT INTO notes (body) VALUES (?)`, "hello")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, 1, countNotes(t, db))
}

func TestSQLiteUnitOfWork_RollbackDiscards(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	ctx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	_, err = SQLiteExecutor(ctx, db).ExecContext(ctx, `INSERT INTO notes (body) VALUES (?)`, "hello")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	assert.Equal(t, 0, countNotes(t, db))
}

func TestSQLiteUnitOfWork_NestedBeginSharesTransaction(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	outer, err := uow.Begin(context.Background())
	require.NoError(t, err)
	inner, err := uow.Begin(outer)
	require.NoError(t, err)

	_, err = SQLiteExecutor(inner, db).ExecContext(inner, `INSERT INTO notes (body) VALUES (?)`, "nested")
	require.NoError(t, err)

	// The inner unit does not own the transaction, so its commit is a no-op
	// and the outer rollback still discards the write.
	require.NoError(t, uow.Commit(inner))
	require.NoError(t, uow.Rollback(outer))

	assert.Equal(t, 0, countNotes(t, db))
}

func TestSQLiteUnitOfWork_NoTransactionInContext(t *testing.T) {
	uow := NewSQLiteUnitOfWork(openTestDB(t))

	assert.Error(t, uow.Commit(context.Background()))
	assert.Error(t, uow.Rollback(context.Background()))
}

func TestSQLiteExecutor_FallsBackToConnection(t *testing.T) {
	db := openTestDB(t)

	_, err := SQLiteExecutor(context.Background(), db).ExecContext(context.Background(),
		`INSERT INTO notes (body) VALUES (?)`, "direct")
	require.NoError(t, err)

	assert.Equal(t, 1, countNotes(t, db))
}

func TestPgxTxInfoFromContext(t *testing.T) {
	_, ok := PgxTxInfoFromContext(context.Background())
	assert.False(t, ok)

	// A stored nil transaction counts as absent.
	_, ok = PgxTxInfoFromContext(WithPgxTx(context.Background(), nil, true))
	assert.False(t, ok)
}
