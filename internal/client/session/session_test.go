package session

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/logging"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func newManager(t *testing.T) (*Manager, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewManager(db, log), db
}

func TestSetCurrent_ThenGetCurrent(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	u := &models.UserRecord{ID: "id-1", Email: "alice@example.com", Password: "pw"}
	require.NoError(t, m.SetCurrent(ctx, u))

	got, err := m.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.True(t, m.IsSignedIn(ctx))
}

func TestGetCurrent_AbsentReturnsNil(t *testing.T) {
	m, _ := newManager(t)

	got, err := m.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIsSignedIn_DefaultsFalse(t *testing.T) {
	m, _ := newManager(t)
	assert.False(t, m.IsSignedIn(context.Background()))
}

func TestGetCurrent_CorruptSnapshotTreatedAsAbsent(t *testing.T) {
	m, db := newManager(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO kv(key, value) VALUES ('currentUser', '{broken')`)
	require.NoError(t, err)

	got, err := m.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear_RemovesSessionKeysOnly(t *testing.T) {
	m, db := newManager(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO kv(key, value) VALUES ('users', '[]')`)
	require.NoError(t, err)
	require.NoError(t, m.SetCurrent(ctx, &models.UserRecord{ID: "id-1", Email: "a@example.com"}))

	require.NoError(t, m.Clear(ctx))

	got, err := m.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, m.IsSignedIn(ctx))

	// the directory blob survives
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key='users'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestClearAll_WipesDirectoryToo(t *testing.T) {
	m, db := newManager(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO kv(key, value) VALUES ('users', '[{"id":"1"}]')`)
	require.NoError(t, err)
	require.NoError(t, m.SetCurrent(ctx, &models.UserRecord{ID: "1", Email: "a@example.com"}))

	require.NoError(t, m.ClearAll(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Zero(t, n)
}
