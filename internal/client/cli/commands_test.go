package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/config"
)

type fakeClient struct {
	access, refresh string

	loginIdentifier string
	loginPassword   string
	validated       [2]string
	resetArgs       [3]string
	hadDeadline     bool

	err error
}

func (f *fakeClient) Close() error { return nil }
func (f *fakeClient) Ping(ctx context.Context) error {
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}
func (f *fakeClient) Login(_ context.Context, identifier string, password []byte) error {
	f.loginIdentifier, f.loginPassword = identifier, string(password)
	if f.err != nil {
		return f.err
	}
	f.access, f.refresh = "a1", "r1"
	return nil
}
func (f *fakeClient) Refresh(context.Context) error { return f.err }
func (f *fakeClient) Logout(context.Context) error {
	f.access, f.refresh = "", ""
	return f.err
}
func (f *fakeClient) Validate(_ context.Context, token, kind string) (string, error) {
	f.validated = [2]string{token, kind}
	return "42", f.err
}
func (f *fakeClient) RequestPasswordReset(context.Context) (string, error) { return "rt", f.err }
func (f *fakeClient) VerifyPasswordResetToken(context.Context, string) (string, error) {
	return "42", f.err
}
func (f *fakeClient) ResetPassword(_ context.Context, resetToken string, newPassword, confirmPassword []byte) error {
	f.resetArgs = [3]string{resetToken, string(newPassword), string(confirmPassword)}
	return f.err
}
func (f *fakeClient) RevokeAccess(context.Context) error { return f.err }
func (f *fakeClient) Tokens() (string, string)          { return f.access, f.refresh }

func newTestApp(t *testing.T, c client.Client, input string, passwords ...string) *App {
	t.Helper()
	capturePrintln(t)

	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}

	return &App{
		config: &config.Config{RequestTimeout: time.Second},
		client: c,
		reader: rdr(input),
		out:    io.Discard,
	}
}

func TestApp_Login(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(t, f, "alice@example.com\n", "secret")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "alice@example.com", f.loginIdentifier)
	assert.Equal(t, "secret", f.loginPassword)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(logged in)", a.getStatus())
}

func TestApp_LoginError(t *testing.T) {
	f := &fakeClient{err: client.ErrUnauthorized}
	a := newTestApp(t, f, "alice\n", "bad")

	assert.ErrorIs(t, a.Login(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestApp_ValidateSessionToken(t *testing.T) {
	f := &fakeClient{access: "a1", refresh: "r1"}
	a := newTestApp(t, f, "\n")

	require.NoError(t, a.Validate(context.Background()))
	assert.Equal(t, [2]string{"a1", "access"}, f.validated)
}

func TestApp_ValidateEnteredToken(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(t, f, "tok\nrefresh\n")

	require.NoError(t, a.Validate(context.Background()))
	assert.Equal(t, [2]string{"tok", "refresh"}, f.validated)
}

func TestApp_ValidateNoSession(t *testing.T) {
	a := newTestApp(t, &fakeClient{}, "\n")
	assert.ErrorIs(t, a.Validate(context.Background()), client.ErrNotLoggedIn)
}

func TestApp_ResetPassword(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(t, f, "rt\n", "n3w", "n3w")

	require.NoError(t, a.ResetPassword(context.Background()))
	assert.Equal(t, [3]string{"rt", "n3w", "n3w"}, f.resetArgs)
}

func TestApp_ResetPasswordInputError(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(t, f, "rt\n", "only-one")

	assert.Error(t, a.ResetPassword(context.Background()))
	assert.Empty(t, f.resetArgs[0])
}

func TestApp_SimpleCommands(t *testing.T) {
	f := &fakeClient{access: "a1", refresh: "r1"}
	a := newTestApp(t, f, "")
	ctx := context.Background()

	require.NoError(t, a.Ping(ctx))
	assert.True(t, f.hadDeadline)
	require.NoError(t, a.Refresh(ctx))
	require.NoError(t, a.ResetToken(ctx))
	require.NoError(t, a.RevokeAccess(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	f.err = client.ErrUnavailable
	assert.ErrorIs(t, a.Ping(ctx), client.ErrUnavailable)
	assert.ErrorIs(t, a.Refresh(ctx), client.ErrUnavailable)
	assert.ErrorIs(t, a.ResetToken(ctx), client.ErrUnavailable)
	assert.ErrorIs(t, a.RevokeAccess(ctx), client.ErrUnavailable)
}
