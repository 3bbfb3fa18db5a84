package tokens

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE tokens (
  id         TEXT PRIMARY KEY,
  token      TEXT NOT NULL UNIQUE,
  type       TEXT NOT NULL,
  user_id    TEXT NOT NULL,
  expires_at INTEGER NOT NULL,
  created_at INTEGER NOT NULL,
  is_active  INTEGER NOT NULL DEFAULT 1
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_InsertFindDelete(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()
	want := sampleToken()

	require.NoError(t, r.Insert(ctx, want))

	got, err := r.FindByToken(ctx, want.Token)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	n, err := r.DeleteByToken(ctx, want.Token)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = r.DeleteByToken(ctx, want.Token)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = r.FindByToken(ctx, want.Token)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLite_InsertDuplicate(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	first := sampleToken()
	require.NoError(t, r.Insert(ctx, first))

	second := sampleToken()
	second.ID = "3f1c2a4e-0000-4000-8000-000000000002"
	assert.ErrorIs(t, r.Insert(ctx, second), common.ErrDuplicateToken)
}

func TestSQLite_DeleteExpired(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, ttl := range []time.Duration{time.Minute, time.Hour, 48 * time.Hour} {
		require.NoError(t, r.Insert(ctx, &models.Token{
			ID:        string(rune('a' + i)),
			Token:     "tok-" + ttl.String(),
			Kind:      models.KindResetPassword,
			UserID:    "u1",
			CreatedAt: base,
			ExpiresAt: base.Add(ttl),
			IsActive:  true,
		}))
	}

	n, err := r.DeleteExpired(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = r.FindByToken(ctx, "tok-48h0m0s")
	assert.NoError(t, err)
}
