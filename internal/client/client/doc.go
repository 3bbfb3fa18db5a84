// Package client talks to the token service over gRPC.
//
// GRPCClient keeps the session's access and refresh tokens, attaches the
// access token to calls that need it, transparently refreshes an expired
// access token once, and maps gRPC status codes to sentinel errors
// (ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrInvalidArgument,
// ErrNotSupported, ErrNotLoggedIn) that callers match with errors.Is.
package client
