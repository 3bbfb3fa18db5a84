// Package repomanager opens the configured token store backend, runs its
// schema migrations and vends repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

// RepositoryManager owns a backend connection.
type RepositoryManager interface {
	// Tokens returns a repository bound to the backend connection.
	Tokens() tokens.Repository

	// WithinTx runs fn with a repository bound to a single transaction when
	// the backend supports one. Backends without multi-statement
	// transactions pass the plain repository through.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo tokens.Repository) error) error

	// RunMigrations brings the backend schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// New opens the backend selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	logger = logger.With("module", "repomanager", "driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN, logger)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DatabaseDSN, logger)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory token store, records are lost on restart")
		return NewMemoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
