package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// MemoryRepository keeps tokens in process memory. Records do not survive a
// restart; it is meant for development and tests.
type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]models.Token
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.Token)}
}

func (r *MemoryRepository) Insert(_ context.Context, t *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[t.Token]; ok {
		return common.ErrDuplicateToken
	}
	r.tokens[t.Token] = *t
	return nil
}

func (r *MemoryRepository) FindByToken(_ context.Context, raw string) (*models.Token, error) {
	r.mu.Lock()
	t, ok := r.tokens[raw]
	r.mu.Unlock()

	if !ok {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) DeleteByToken(_ context.Context, raw string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[raw]; !ok {
		return 0, nil
	}
	delete(r.tokens, raw)
	return 1, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for raw, t := range r.tokens {
		if !t.ExpiresAt.After(now) {
			delete(r.tokens, raw)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
