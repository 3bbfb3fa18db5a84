package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores tokens in PostgreSQL over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, t *models.Token) error {
	query := `
		INSERT INTO tokens (id, token, type, user_id, expires_at, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Token, string(t.Kind), t.UserID, t.ExpiresAt, t.CreatedAt, t.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateToken
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, raw string) (*models.Token, error) {
	query := `
		SELECT id, token, type, user_id, expires_at, created_at, is_active
		FROM tokens
		WHERE token = $1
	`
	t := &models.Token{}
	var kind string
	err := r.db.QueryRowContext(ctx, query, raw).
		Scan(&t.ID, &t.Token, &kind, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.Kind = models.Kind(kind)
	return t, nil
}

func (r *PostgresRepository) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	query := `
		DELETE FROM tokens
		WHERE token = $1
	`
	return r.exec(ctx, query, raw)
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM tokens
		WHERE expires_at <= $1
	`
	return r.exec(ctx, query, now)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	n, err := dbx.ExecAffected(ctx, r.db, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
