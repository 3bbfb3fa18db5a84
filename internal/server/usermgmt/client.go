// Package usermgmt talks to the external user-management service that owns
// user records and password hashes.
package usermgmt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/cryptox"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/netx"
)

// User is the subset of the user record the token service relies on.
type User struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type passwordUpdate struct {
	Password string `json:"password"`
}

// Client implements services.CredentialVerifier and services.PasswordUpdater.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("module", "usermgmt"),
	}
}

// GetUser fetches the user record by username or email.
func (c *Client) GetUser(ctx context.Context, identifier string) (*User, error) {
	var u User
	err := netx.DoJSON(ctx, c.http, http.MethodGet, c.baseURL+"/users/"+url.PathEscape(identifier), nil, &u)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, common.ErrNotFound
		}
		c.logger.Error(ctx, "fetch user failed", "error", err)
		return nil, fmt.Errorf("%w: fetch user: %v", common.ErrUserService, err)
	}
	return &u, nil
}

// Verify checks password against the stored bcrypt hash and returns the
// user ID. Unknown users and wrong passwords are indistinguishable.
func (c *Client) Verify(ctx context.Context, identifier, password string) (string, error) {
	u, err := c.GetUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}
	if u.ID == "" || !cryptox.CheckPassword(u.Password, password) {
		return "", common.ErrInvalidCredentials
	}
	return u.ID, nil
}

// UpdatePassword hashes newPassword and stores it for userID.
func (c *Client) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	target := c.baseURL + "/users/" + url.PathEscape(userID) + "/password"
	if err := netx.DoJSON(ctx, c.http, http.MethodPut, target, passwordUpdate{Password: hash}, nil); err != nil {
		c.logger.Error(ctx, "update password failed", "user_id", userID, "error", err)
		return fmt.Errorf("%w: update password: %v", common.ErrUserService, err)
	}
	return nil
}
