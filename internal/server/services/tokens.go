// Package services contains server-side business logic. This file implements
// TokenService, which issues, validates, rotates and revokes access, refresh
// and password-reset tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// TokenSigner encodes and decodes signed tokens.
type TokenSigner interface {
	Encode(c models.Claims) (string, error)
	Decode(token string, expected models.Kind) (models.Claims, error)
}

// TokenStore vends token repositories; repomanager.RepositoryManager
// satisfies it.
type TokenStore interface {
	Tokens() tokens.Repository
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo tokens.Repository) error) error
}

// Denylist holds revoked access tokens until their natural expiry.
type Denylist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService implements the token lifecycle. Access tokens are stateless;
// refresh and reset tokens are persisted, and their presence in the store
// is part of their validity.
type TokenService struct {
	store    TokenStore
	signer   TokenSigner
	clock    Clock
	denylist Denylist
	logger   logging.Logger
	newID    func() string

	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	rotate     bool
}

// TokenServiceOption customises a TokenService.
type TokenServiceOption func(*TokenService)

// WithDenylist enables access-token revocation.
func WithDenylist(d Denylist) TokenServiceOption {
	return func(s *TokenService) { s.denylist = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) TokenServiceOption {
	return func(s *TokenService) { s.logger = l.With("module", "tokens") }
}

// NewTokenService constructs a TokenService. TTLs and the rotation policy
// come from cfg; the reset-token lifetime is always config.ResetTokenValidity.
func NewTokenService(store TokenStore, signer TokenSigner, clock Clock, cfg *config.Config, opts ...TokenServiceOption) *TokenService {
	s := &TokenService{
		store:      store,
		signer:     signer,
		clock:      clock,
		logger:     logging.Nop{},
		newID:      uuid.NewString,
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
		resetTTL:   config.ResetTokenValidity,
		rotate:     cfg.RotateRefreshTokens,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DenylistEnabled reports whether access tokens can be revoked.
func (s *TokenService) DenylistEnabled() bool {
	return s.denylist != nil
}

// CreateAccessToken signs a stateless access token for userID.
func (s *TokenService) CreateAccessToken(userID string) (string, error) {
	token, err := s.signer.Encode(models.Claims{
		Subject:   userID,
		Kind:      models.KindAccess,
		ExpiresAt: s.now().Add(s.accessTTL),
	})
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// CreateRefreshToken signs and persists a refresh token for userID. If the
// record cannot be stored no token is returned.
func (s *TokenService) CreateRefreshToken(ctx context.Context, userID string) (string, error) {
	return s.issueStateful(ctx, s.store.Tokens(), userID, models.KindRefresh, s.refreshTTL)
}

// GeneratePasswordResetToken signs and persists a reset token that expires
// exactly 48 hours after issuance.
func (s *TokenService) GeneratePasswordResetToken(ctx context.Context, userID string) (string, error) {
	return s.issueStateful(ctx, s.store.Tokens(), userID, models.KindResetPassword, s.resetTTL)
}

// IssueTokenPair returns a fresh access token and a persisted refresh token.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	refresh, err := s.CreateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	access, err := s.CreateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateToken decodes token as expected and returns its subject.
//
// Failure kinds:
//   - common.ErrInvalidSignature, common.ErrKindMismatch (both common.ErrInvalidToken)
//   - common.ErrTokenExpired
//   - common.ErrRevoked: a stateful token absent from the store, or a
//     denylisted access token
//   - common.ErrStorage: the store or denylist could not be queried
func (s *TokenService) ValidateToken(ctx context.Context, token string, expected models.Kind) (string, error) {
	claims, err := s.signer.Decode(token, expected)
	if err != nil {
		return "", err
	}

	if expected.Stateful() {
		if _, err := s.store.Tokens().FindByToken(ctx, token); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return "", common.ErrRevoked
			}
			return "", storageErr(err)
		}
		return claims.Subject, nil
	}

	if s.denylist != nil {
		denied, err := s.denylist.Contains(ctx, token)
		if err != nil {
			return "", storageErr(err)
		}
		if denied {
			return "", common.ErrRevoked
		}
	}

	return claims.Subject, nil
}

// RevokeToken deletes a stateful token. A second revoke of the same token
// fails with common.ErrNotFoundOrAlreadyRevoked.
func (s *TokenService) RevokeToken(ctx context.Context, token string) error {
	n, err := s.store.Tokens().DeleteByToken(ctx, token)
	if err != nil {
		return storageErr(err)
	}
	if n == 0 {
		return common.ErrNotFoundOrAlreadyRevoked
	}
	s.logger.Info(ctx, "token revoked")
	return nil
}

// RefreshAccessToken validates refresh (signature, expiry, kind and store
// presence) and issues a new access token for its subject. The refresh
// token stays valid.
func (s *TokenService) RefreshAccessToken(ctx context.Context, refresh string) (string, error) {
	userID, err := s.ValidateToken(ctx, refresh, models.KindRefresh)
	if err != nil {
		return "", err
	}
	return s.CreateAccessToken(userID)
}

// RotateRefreshToken exchanges refresh for a new pair and invalidates it.
// The replacement is stored before the presented record is claimed by an
// atomic delete, so a failed insert leaves refresh usable on backends
// without transactions. A concurrent or repeated use finds nothing to
// delete, discards its replacement and fails with common.ErrRevoked.
func (s *TokenService) RotateRefreshToken(ctx context.Context, refresh string) (*TokenPair, error) {
	claims, err := s.signer.Decode(refresh, models.KindRefresh)
	if err != nil {
		return nil, err
	}

	var newRefresh string
	err = s.store.WithinTx(ctx, func(ctx context.Context, repo tokens.Repository) error {
		issued, err := s.issueStateful(ctx, repo, claims.Subject, models.KindRefresh, s.refreshTTL)
		if err != nil {
			return err
		}

		n, err := repo.DeleteByToken(ctx, refresh)
		if err == nil && n > 0 {
			newRefresh = issued
			return nil
		}

		s.discard(ctx, repo, issued)
		if err != nil {
			return storageErr(err)
		}
		return common.ErrRevoked
	})
	if err != nil {
		return nil, err
	}

	access, err := s.CreateAccessToken(claims.Subject)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

// discard removes a replacement token that lost its rotation. Failures are
// only logged.
func (s *TokenService) discard(ctx context.Context, repo tokens.Repository, token string) {
	if _, err := repo.DeleteByToken(ctx, token); err != nil {
		s.logger.Warn(ctx, "unclaimed refresh token not removed", "error", err)
	}
}

// Refresh applies the configured refresh policy: rotation when enabled,
// otherwise a new access token alongside the unchanged refresh token.
func (s *TokenService) Refresh(ctx context.Context, refresh string) (*TokenPair, error) {
	if s.rotate {
		return s.RotateRefreshToken(ctx, refresh)
	}
	access, err := s.RefreshAccessToken(ctx, refresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyPasswordResetToken validates token as a reset token and returns its
// subject. It does not revoke the token.
func (s *TokenService) VerifyPasswordResetToken(ctx context.Context, token string) (string, error) {
	return s.ValidateToken(ctx, token, models.KindResetPassword)
}

// RevokeAccessToken denies a still-valid access token for the rest of its
// lifetime.
func (s *TokenService) RevokeAccessToken(ctx context.Context, access string) error {
	if s.denylist == nil {
		return common.ErrDenylistDisabled
	}
	claims, err := s.signer.Decode(access, models.KindAccess)
	if err != nil {
		return err
	}
	if err := s.denylist.Add(ctx, access, claims.ExpiresAt.Sub(s.clock.Now())); err != nil {
		return storageErr(err)
	}
	s.logger.Info(ctx, "access token denied", "user_id", claims.Subject)
	return nil
}

// TokenDetail returns the stored record for a stateful token.
func (s *TokenService) TokenDetail(ctx context.Context, token string) (*models.Token, error) {
	rec, err := s.store.Tokens().FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, storageErr(err)
	}
	return rec, nil
}

func (s *TokenService) issueStateful(ctx context.Context, repo tokens.Repository, userID string, kind models.Kind, ttl time.Duration) (string, error) {
	now := s.now()
	rec := &models.Token{
		ID:        s.newID(),
		Kind:      kind,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		IsActive:  true,
	}

	token, err := s.signer.Encode(models.Claims{
		Subject:   userID,
		Kind:      kind,
		ExpiresAt: rec.ExpiresAt,
		ID:        rec.ID,
	})
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	rec.Token = token

	if err := repo.Insert(ctx, rec); err != nil {
		s.logger.Error(ctx, "token not persisted", "kind", kind, "user_id", userID, "error", err)
		return "", storageErr(err)
	}

	s.logger.Debug(ctx, "token issued", "kind", kind, "user_id", userID)
	return token, nil
}

// now is the clock time in UTC truncated to the second, the resolution of
// the exp claim.
func (s *TokenService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

func storageErr(err error) error {
	if errors.Is(err, common.ErrStorage) || errors.Is(err, common.ErrDuplicateToken) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
