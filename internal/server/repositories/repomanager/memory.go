package repomanager

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

// MemoryRepositoryManager serves the in-process store.
type MemoryRepositoryManager struct {
	repo *tokens.MemoryRepository
}

func NewMemoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: tokens.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Tokens() tokens.Repository {
	return m.repo
}

// WithinTx runs fn against the shared map. Writes made by fn are not rolled
// back when it fails.
func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repo tokens.Repository) error) error {
	return fn(ctx, m.repo)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
