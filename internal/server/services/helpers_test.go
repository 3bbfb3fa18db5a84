package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/auth"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		SigningAlgorithm:             config.AlgHS256,
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
		ResetTokenValidityDuration:   config.ResetTokenValidity,
	}
}

type fixture struct {
	svc    *TokenService
	clock  *clockwork.FakeClock
	store  *repomanager.MemoryRepositoryManager
	signer *auth.Signer
}

func newFixture(t *testing.T, cfg *config.Config, opts ...TokenServiceOption) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(epoch)
	signer, err := auth.NewSigner(cfg.SigningAlgorithm, cfg.SecretKey, clock)
	require.NoError(t, err)
	store := repomanager.NewMemoryManager()
	return &fixture{
		svc:    NewTokenService(store, signer, clock, cfg, opts...),
		clock:  clock,
		store:  store,
		signer: signer,
	}
}

// failingStore returns errStoreDown from every repository call.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Tokens() tokens.Repository { return failingRepo{} }

func (failingStore) WithinTx(ctx context.Context, fn func(context.Context, tokens.Repository) error) error {
	return fn(ctx, failingRepo{})
}

type failingRepo struct{}

func (failingRepo) Insert(context.Context, *models.Token) error { return errStoreDown }

func (failingRepo) FindByToken(context.Context, string) (*models.Token, error) {
	return nil, errStoreDown
}

func (failingRepo) DeleteByToken(context.Context, string) (int64, error) { return 0, errStoreDown }

func (failingRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}

// faultyStore wraps the memory manager and injects errors into the
// repository handed to WithinTx.
type faultyStore struct {
	*repomanager.MemoryRepositoryManager
	insertErr error
	deleteErr error
}

func (s *faultyStore) WithinTx(ctx context.Context, fn func(context.Context, tokens.Repository) error) error {
	return s.MemoryRepositoryManager.WithinTx(ctx, func(ctx context.Context, repo tokens.Repository) error {
		return fn(ctx, faultyRepo{Repository: repo, store: s})
	})
}

type faultyRepo struct {
	tokens.Repository
	store *faultyStore
}

func (r faultyRepo) Insert(ctx context.Context, t *models.Token) error {
	if r.store.insertErr != nil {
		return r.store.insertErr
	}
	return r.Repository.Insert(ctx, t)
}

func (r faultyRepo) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	if r.store.deleteErr != nil {
		return 0, r.store.deleteErr
	}
	return r.Repository.DeleteByToken(ctx, raw)
}

func newFaultyFixture(t *testing.T) (*fixture, *faultyStore) {
	t.Helper()
	cfg := testConfig()
	clock := clockwork.NewFakeClockAt(epoch)
	signer, err := auth.NewSigner(cfg.SigningAlgorithm, cfg.SecretKey, clock)
	require.NoError(t, err)
	mem := repomanager.NewMemoryManager()
	store := &faultyStore{MemoryRepositoryManager: mem}
	return &fixture{
		svc:    NewTokenService(store, signer, clock, cfg),
		clock:  clock,
		store:  mem,
		signer: signer,
	}, store
}
