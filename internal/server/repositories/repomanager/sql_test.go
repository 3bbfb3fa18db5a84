package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestManagers_SatisfyInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var _ RepositoryManager = NewPostgresManager(db, logging.Nop{})
	var _ RepositoryManager = NewSQLiteManager(db, logging.Nop{})
	var _ RepositoryManager = NewMemoryManager()
	var _ RepositoryManager = &MongoRepositoryManager{}
}

func TestTokens_ReturnsBackendRepo(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	_, ok := NewPostgresManager(db, logging.Nop{}).Tokens().(*tokens.PostgresRepository)
	assert.True(t, ok)
	_, ok = NewSQLiteManager(db, logging.Nop{}).Tokens().(*tokens.SQLiteRepository)
	assert.True(t, ok)
	_, ok = NewMemoryManager().Tokens().(*tokens.MemoryRepository)
	assert.True(t, ok)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+tokens`).WithArgs("old").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewPostgresManager(db, logging.Nop{})
	err := m.WithinTx(context.Background(), func(ctx context.Context, repo tokens.Repository) error {
		_, err := repo.DeleteByToken(ctx, "old")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := NewPostgresManager(db, logging.Nop{})
	err := m.WithinTx(context.Background(), func(ctx context.Context, repo tokens.Repository) error {
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "postgres" {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresManager(db, logging.Nop{})
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresManager(db, logging.Nop{})
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestClose_ClosesDB(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	require.NoError(t, NewPostgresManager(db, logging.Nop{}).Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSQLite_MigratesAndStores(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "data", "tokens.db")

	m, err := OpenSQLite(ctx, dsn, logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close(ctx) })

	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.RunMigrations(ctx), "migrations must be idempotent")

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := &models.Token{
		ID:        "11111111-1111-4111-8111-111111111111",
		Token:     "raw",
		Kind:      models.KindResetPassword,
		UserID:    "u1",
		CreatedAt: created,
		ExpiresAt: created.Add(48 * time.Hour),
		IsActive:  true,
	}

	err = m.WithinTx(ctx, func(ctx context.Context, repo tokens.Repository) error {
		return repo.Insert(ctx, tok)
	})
	require.NoError(t, err)

	got, err := m.Tokens().FindByToken(ctx, "raw")
	require.NoError(t, err)
	assert.Equal(t, tok, got)

	var tables int
	require.NoError(t, m.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tokens'`).Scan(&tables))
	assert.Equal(t, 1, tables)
}

func TestGooseLogger_Forwards(t *testing.T) {
	rec := &recordingLogger{}
	g := gooseLogger{ctx: context.Background(), l: rec}

	g.Printf("OK %s", "00001_create_tokens.sql")
	g.Fatalf("failed %d", 1)

	assert.Equal(t, []string{"info: OK 00001_create_tokens.sql", "error: failed 1"}, rec.lines)
}

type recordingLogger struct {
	logging.Nop
	lines []string
}

func (r *recordingLogger) Info(_ context.Context, msg string, _ ...any) {
	r.lines = append(r.lines, "info: "+msg)
}

func (r *recordingLogger) Error(_ context.Context, msg string, _ ...any) {
	r.lines = append(r.lines, "error: "+msg)
}

