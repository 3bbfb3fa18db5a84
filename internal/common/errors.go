// Package common defines shared constants and sentinel errors used across
// the server, transports and the CLI client. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateToken = errors.New("duplicate token")
	ErrStorage        = errors.New("storage error")

	// Token validation errors. ErrInvalidSignature and ErrKindMismatch both
	// match ErrInvalidToken.
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = fmt.Errorf("%w: signature verification failed", ErrInvalidToken)
	ErrKindMismatch     = fmt.Errorf("%w: token kind mismatch", ErrInvalidToken)
	ErrTokenExpired     = errors.New("token expired")

	// Token lifecycle errors.
	ErrRevoked                  = errors.New("token revoked")
	ErrNotFoundOrAlreadyRevoked = errors.New("token not found or already revoked")
	ErrDenylistDisabled         = errors.New("access token denylist is not configured")

	// Collaborator errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserService        = errors.New("user management service error")

	// Request validation.
	ErrValidation = errors.New("validation error")
)
