package client

import "context"

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, identifier string, password []byte) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Validate(ctx context.Context, token, kind string) (string, error)
	RequestPasswordReset(ctx context.Context) (string, error)
	VerifyPasswordResetToken(ctx context.Context, resetToken string) (string, error)
	ResetPassword(ctx context.Context, resetToken string, newPassword, confirmPassword []byte) error
	RevokeAccess(ctx context.Context) error
	Tokens() (access, refresh string)
}
