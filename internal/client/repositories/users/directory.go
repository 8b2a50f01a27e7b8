// Package users implements the local user directory: the persisted
// collection of registered accounts, stored as one JSON blob in the
// key-value store and guarded by an email uniqueness constraint.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/client/repositories/kv"
	"github.com/dmitrijs2005/shopcore/internal/common"
	"github.com/dmitrijs2005/shopcore/internal/dbx"
	"github.com/dmitrijs2005/shopcore/internal/logging"
)

// StorageKey is the key-value store key holding the serialized directory.
const StorageKey = "users"

// Directory owns the registered-user collection. Every mutation is a
// whole-blob read-modify-write; a directory-level mutex plus a SQLite
// transaction serialize writers, so two concurrent Adds cannot drop
// each other's insertion.
type Directory struct {
	db  *sql.DB
	log logging.Logger

	mu sync.Mutex
}

// NewDirectory returns a Directory persisting through the given database.
func NewDirectory(db *sql.DB, log logging.Logger) *Directory {
	return &Directory{db: db, log: log.With("component", "directory")}
}

// ListAll returns every registered record in insertion order. A missing or
// unparseable blob yields an empty slice: corruption is logged and treated
// as "no users", never surfaced to the caller.
func (d *Directory) ListAll(ctx context.Context) ([]models.UserRecord, error) {
	repo := kv.NewSQLiteRepository(d.db)
	raw, err := repo.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}
	return d.decode(ctx, raw), nil
}

// Add registers a new account. It scans case-insensitively for an existing
// email and returns common.ErrDuplicateUser on a hit; otherwise it assigns
// a fresh id and creation timestamp, appends the record, and writes the
// whole list back in one transaction. The persisted record is returned.
func (d *Directory) Add(ctx context.Context, data models.SignupData) (*models.UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec := models.UserRecord{
		ID:        uuid.NewString(),
		Email:     data.Email,
		Password:  data.Password,
		Name:      data.Name,
		Profile:   data.Profile,
		CreatedAt: time.Now().UTC(),
	}

	err := dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		raw, err := repo.Get(ctx, StorageKey)
		if err != nil {
			return fmt.Errorf("failed to read user directory: %w", err)
		}
		list := d.decode(ctx, raw)

		for _, u := range list {
			if strings.EqualFold(u.Email, data.Email) {
				return common.ErrDuplicateUser
			}
		}

		list = append(list, rec)
		blob, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to serialize user directory: %w", err)
		}
		return repo.Set(ctx, StorageKey, blob)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Find looks up a record by case-insensitive email and byte-exact password.
// A simple no-match returns (nil, nil).
func (d *Directory) Find(ctx context.Context, email, password string) (*models.UserRecord, error) {
	list, err := d.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Email, email) && list[i].Password == password {
			return &list[i], nil
		}
	}
	return nil, nil
}

// decode unmarshals the directory blob. nil input means nothing was ever
// stored; a blob that fails to parse is discarded as corrupt.
func (d *Directory) decode(ctx context.Context, raw []byte) []models.UserRecord {
	if raw == nil {
		return nil
	}
	var list []models.UserRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		d.log.Warn(ctx, "discarding corrupt user directory blob", "error", err)
		return nil
	}
	return list
}
