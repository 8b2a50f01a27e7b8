// Package storage opens the client database and wires up the persistence
// stack: the key-value store, the user directory, and the session state.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/shopcore/internal/client/migrations"
	"github.com/dmitrijs2005/shopcore/internal/client/repositories/kv"
	"github.com/dmitrijs2005/shopcore/internal/client/repositories/users"
	"github.com/dmitrijs2005/shopcore/internal/client/session"
	"github.com/dmitrijs2005/shopcore/internal/logging"
)

// Repositories bundles the persistence components built over one database.
type Repositories struct {
	DB        *sql.DB
	KV        kv.Repository
	Directory *users.Directory
	Session   *session.Manager
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, migrates the schema, and
// returns the wired repositories.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:        db,
		KV:        kv.NewSQLiteRepository(db),
		Directory: users.NewDirectory(db, log),
		Session:   session.NewManager(db, log),
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
