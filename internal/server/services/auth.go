package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
)

// CredentialVerifier checks a user's credentials against the external user
// directory and returns the user ID. Bad credentials yield
// common.ErrInvalidCredentials.
type CredentialVerifier interface {
	Verify(ctx context.Context, identifier, password string) (string, error)
}

// PasswordUpdater stores a new password for a user in the external directory.
type PasswordUpdater interface {
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}

// AuthService composes credential checks with the token lifecycle:
// login, logout and the password-reset flow.
type AuthService struct {
	tokens   *TokenService
	verifier CredentialVerifier
	updater  PasswordUpdater
	logger   logging.Logger
}

func NewAuthService(tokens *TokenService, verifier CredentialVerifier, updater PasswordUpdater, logger logging.Logger) *AuthService {
	return &AuthService{
		tokens:   tokens,
		verifier: verifier,
		updater:  updater,
		logger:   logger.With("module", "auth"),
	}
}

// Login verifies credentials and returns a new token pair.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", common.ErrValidation)
	}

	userID, err := s.verifier.Verify(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssueTokenPair(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user logged in", "user_id", userID)
	return pair, nil
}

// Logout revokes the refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeToken(ctx, refreshToken)
}

// RequestPasswordReset issues a password-reset token for userID.
func (s *AuthService) RequestPasswordReset(ctx context.Context, userID string) (string, error) {
	return s.tokens.GeneratePasswordResetToken(ctx, userID)
}

// ResetPassword verifies resetToken, stores the new password and then
// revokes the token so it cannot be used again.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", common.ErrValidation)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	userID, err := s.tokens.VerifyPasswordResetToken(ctx, resetToken)
	if err != nil {
		return err
	}

	if err := s.updater.UpdatePassword(ctx, userID, newPassword); err != nil {
		return err
	}

	if err := s.tokens.RevokeToken(ctx, resetToken); err != nil {
		s.logger.Warn(ctx, "password updated but reset token not revoked", "user_id", userID, "error", err)
		return fmt.Errorf("revoke reset token: %w", err)
	}

	s.logger.Info(ctx, "password reset", "user_id", userID)
	return nil
}
