package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/shopcore/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx), so callers can run several operations inside one transaction.
// Every call goes straight to the database; there is no cache in front,
// which keeps writes immediately durable.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

// GetString returns the stored string and whether the key was present.
func (r *SQLiteRepository) GetString(ctx context.Context, key string) (string, bool, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (r *SQLiteRepository) SetString(ctx context.Context, key string, value string) error {
	return r.Set(ctx, key, []byte(value))
}

// GetBool returns the stored boolean and whether the key was present.
// A value that does not parse as a boolean (e.g. it was written with
// SetString) is reported as absent.
func (r *SQLiteRepository) GetBool(ctx context.Context, key string) (bool, bool, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return false, false, err
	}
	if v == nil {
		return false, false, nil
	}
	b, err := strconv.ParseBool(string(v))
	if err != nil {
		return false, false, nil
	}
	return b, true, nil
}

func (r *SQLiteRepository) SetBool(ctx context.Context, key string, value bool) error {
	return r.Set(ctx, key, []byte(strconv.FormatBool(value)))
}
