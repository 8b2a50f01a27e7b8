// Package session tracks the currently authenticated user: a persisted
// snapshot of the account plus a signed-in flag, both kept in the
// key-value store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/client/repositories/kv"
	"github.com/dmitrijs2005/shopcore/internal/client/repositories/users"
	"github.com/dmitrijs2005/shopcore/internal/dbx"
	"github.com/dmitrijs2005/shopcore/internal/logging"
)

const (
	currentUserKey = "currentUser"
	signedInKey    = "session"
)

// Manager reads and writes the persisted session state.
type Manager struct {
	db  *sql.DB
	log logging.Logger
}

// NewManager returns a Manager persisting through the given database.
func NewManager(db *sql.DB, log logging.Logger) *Manager {
	return &Manager{db: db, log: log.With("component", "session")}
}

// SetCurrent persists the user snapshot and flips the signed-in flag,
// atomically.
func (m *Manager) SetCurrent(ctx context.Context, user *models.UserRecord) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize current user: %w", err)
	}
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, currentUserKey, blob); err != nil {
			return err
		}
		return repo.SetBool(ctx, signedInKey, true)
	})
}

// GetCurrent returns the persisted user snapshot, or (nil, nil) when no
// user is stored. An unparseable snapshot is logged and treated as absent.
func (m *Manager) GetCurrent(ctx context.Context) (*models.UserRecord, error) {
	repo := kv.NewSQLiteRepository(m.db)
	raw, err := repo.Get(ctx, currentUserKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var user models.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		m.log.Warn(ctx, "discarding corrupt current user snapshot", "error", err)
		return nil, nil
	}
	return &user, nil
}

// IsSignedIn returns the persisted flag, defaulting to false on any
// read failure.
func (m *Manager) IsSignedIn(ctx context.Context) bool {
	repo := kv.NewSQLiteRepository(m.db)
	v, ok, err := repo.GetBool(ctx, signedInKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read signed-in flag", "error", err)
		return false
	}
	if !ok {
		return false
	}
	return v
}

// Clear removes only the session keys; registered users stay in the
// directory.
func (m *Manager) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, currentUserKey); err != nil {
			return err
		}
		return repo.Delete(ctx, signedInKey)
	})
}

// ClearAll removes the session keys AND the entire user directory. This is
// what logout does in this system: logging out erases all locally
// registered accounts, not just the active session (see DESIGN.md).
func (m *Manager) ClearAll(ctx context.Context) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, users.StorageKey); err != nil {
			return err
		}
		if err := repo.Delete(ctx, currentUserKey); err != nil {
			return err
		}
		return repo.Delete(ctx, signedInKey)
	})
}
