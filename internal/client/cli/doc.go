// Package cli provides the interactive command-line client of the token
// service.
//
// It wires configuration and the gRPC client into a small REPL. The session
// keeps the access and refresh tokens in memory only.
//
// Commands:
//   - login / logout
//   - refresh            exchange the refresh token for a new access token
//   - validate           check any token (defaults to the session access token)
//   - reset-token        request a password-reset token for the logged-in user
//   - reset-password     set a new password with a reset token
//   - revoke-access      deny the session access token on the server
//   - ping, help, exit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
