package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// SQLiteRepository stores tokens in SQLite. Timestamps are kept as Unix
// seconds, matching the precision of the exp claim.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (id, token, type, user_id, expires_at, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Token, string(t.Kind), t.UserID, t.ExpiresAt.Unix(), t.CreatedAt.Unix(), t.IsActive)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return common.ErrDuplicateToken
		}
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindByToken(ctx context.Context, raw string) (*models.Token, error) {
	var (
		t                  models.Token
		kind               string
		expires, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token, type, user_id, expires_at, created_at, is_active
		FROM tokens WHERE token = ?
	`, raw).Scan(&t.ID, &t.Token, &kind, &t.UserID, &expires, &createdAt, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find token: %w", err)
	}
	t.Kind = models.Kind(kind)
	t.ExpiresAt = time.Unix(expires, 0).UTC()
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &t, nil
}

func (r *SQLiteRepository) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM tokens WHERE token = ?`, raw)
	if err != nil {
		return 0, fmt.Errorf("failed to delete token: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM tokens WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return n, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
