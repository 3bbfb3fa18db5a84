package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/filex"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

// SQLRepositoryManager serves the database/sql backends (PostgreSQL and
// SQLite). Schema migrations are applied with goose from embedded files.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect goose.Dialect
	fsys    fs.FS
	dir     string
	newRepo func(db dbx.DBTX) tokens.Repository
	logger  logging.Logger
}

// NewPostgresManager wraps an open pgx-backed *sql.DB.
func NewPostgresManager(db *sql.DB, logger logging.Logger) *SQLRepositoryManager {
	return &SQLRepositoryManager{
		db:      db,
		dialect: goose.DialectPostgres,
		fsys:    migrations.Postgres,
		dir:     "postgres",
		newRepo: func(db dbx.DBTX) tokens.Repository { return tokens.NewPostgresRepository(db) },
		logger:  logger,
	}
}

// NewSQLiteManager wraps an open modernc sqlite *sql.DB.
func NewSQLiteManager(db *sql.DB, logger logging.Logger) *SQLRepositoryManager {
	return &SQLRepositoryManager{
		db:      db,
		dialect: goose.DialectSQLite3,
		fsys:    migrations.SQLite,
		dir:     "sqlite",
		newRepo: func(db dbx.DBTX) tokens.Repository { return tokens.NewSQLiteRepository(db) },
		logger:  logger,
	}
}

// OpenPostgres connects to PostgreSQL through the pgx stdlib driver.
func OpenPostgres(ctx context.Context, dsn string, logger logging.Logger) (*SQLRepositoryManager, error) {
	db, err := openDB(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgresManager(db, logger), nil
}

// OpenSQLite opens (or creates) a SQLite database file, creating its
// directory when needed.
func OpenSQLite(ctx context.Context, dsn string, logger logging.Logger) (*SQLRepositoryManager, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	db, err := openDB(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return NewSQLiteManager(db, logger), nil
}

func openDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// DB exposes the underlying handle.
func (m *SQLRepositoryManager) DB() *sql.DB {
	return m.db
}

// Tokens returns a token repository bound to the database handle.
func (m *SQLRepositoryManager) Tokens() tokens.Repository {
	return m.newRepo(m.db)
}

// WithinTx runs fn inside a database transaction via dbx.WithTx.
func (m *SQLRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repo tokens.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.newRepo(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the managed database.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(m.fsys)
	goose.SetLogger(gooseLogger{ctx: ctx, l: m.logger})
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.dir); err != nil {
		return err
	}
	return nil
}

// Close closes the database handle.
func (m *SQLRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}

// gooseLogger forwards goose progress messages to the service logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(g.ctx, fmt.Sprintf(format, v...))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, fmt.Sprintf(format, v...))
}
