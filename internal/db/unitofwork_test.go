package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/holotask/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func putKey(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, 'test')`, key, value)
	return err
}

// lookup reads a key through a fresh transaction.
func lookup(t *testing.T, uow *db.SQLiteUnitOfWork, key string) (string, bool) {
	t.Helper()
	var val string
	var found bool
	require.NoError(t, uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&val); err != nil {
			return nil
		}
		found = true
		return nil
	}))
	return val, found
}

func TestWithinTx_Commits(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return putKey(ctx, tx, "HOLOTASK_CURRENT_USER", "nova")
	})
	require.NoError(t, err)

	val, found := lookup(t, uow, "HOLOTASK_CURRENT_USER")
	assert.True(t, found)
	assert.Equal(t, "nova", val)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow := newUoW(t)
	errBoom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putKey(ctx, tx, "k", "v"); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	_, found := lookup(t, uow, "k")
	assert.False(t, found)
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putKey(ctx, tx, "k", "v")
			panic("boom")
		})
	})

	_, found := lookup(t, uow, "k")
	assert.False(t, found)
}
