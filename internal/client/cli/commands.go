package cli

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Login(ctx, identifier, password); err != nil {
		return err
	}
	printlnFn("Login successful")
	return nil
}

// Logout revokes the session refresh token.
func (a *App) Logout(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Refresh(ctx); err != nil {
		return err
	}
	printlnFn("Access token refreshed")
	return nil
}

// Validate checks a token entered by the user, or the session access token
// when the input is empty.
func (a *App) Validate(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter token (empty for the session access token)", a.out)
	if err != nil {
		return err
	}
	kind := "access"
	if token == "" {
		token, _ = a.client.Tokens()
		if token == "" {
			return client.ErrNotLoggedIn
		}
	} else {
		kind, err = getSimpleText(a.reader, "Enter kind (access, refresh, reset_password)", a.out)
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	sub, err := a.client.Validate(ctx, token, kind)
	if err != nil {
		return err
	}
	printlnFn("Token is valid for user", sub)
	return nil
}

// ResetToken requests a password-reset token for the logged-in user.
func (a *App) ResetToken(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	tok, err := a.client.RequestPasswordReset(ctx)
	if err != nil {
		return err
	}
	printlnFn("Reset token:", tok)
	return nil
}

// ResetPassword sets a new password using a reset token.
func (a *App) ResetPassword(ctx context.Context) error {
	resetToken, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}

	newPassword, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := getPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	sub, err := a.client.VerifyPasswordResetToken(ctx, resetToken)
	if err != nil {
		return err
	}
	if err := a.client.ResetPassword(ctx, resetToken, newPassword, confirm); err != nil {
		return err
	}
	printlnFn("Password reset for user", sub)
	return nil
}

// RevokeAccess denies the session access token on the server.
func (a *App) RevokeAccess(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.RevokeAccess(ctx); err != nil {
		return err
	}
	printlnFn("Access token revoked")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	printlnFn("OK")
	return nil
}
