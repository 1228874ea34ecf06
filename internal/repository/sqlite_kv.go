package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/holotask/internal/db"
)

// SQLiteKVRepo implements KVRepo over the kv_store table.
type SQLiteKVRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteKVRepo creates a KVRepo running statements directly on conn.
// It supports WithinTx only when built with NewSQLiteKVRepoWithUoW.
func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

// NewSQLiteKVRepoWithUoW creates a KVRepo whose WithinTx runs on uow.
func NewSQLiteKVRepoWithUoW(conn db.DBTX, uow db.UnitOfWork) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn, uow: uow}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteKVRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// WithinTx runs fn with a tx-scoped repo. Without a UnitOfWork fn runs
// directly against the connection.
func (r *SQLiteKVRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, kv KVRepo) error) error {
	if r.uow == nil {
		return fn(ctx, r)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteKVRepo(tx))
	})
}

var _ TxKVRepo = (*SQLiteKVRepo)(nil)
