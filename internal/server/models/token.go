// Package models defines server-side data models persisted by the token stores.
package models

import "time"

// Kind is the intended use of a token, carried in its "type" claim.
type Kind string

const (
	KindAccess        Kind = "access"
	KindRefresh       Kind = "refresh"
	KindResetPassword Kind = "reset_password"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAccess, KindRefresh, KindResetPassword:
		return true
	}
	return false
}

// Stateful reports whether tokens of this kind are persisted. Presence in
// the store is part of their validity.
func (k Kind) Stateful() bool {
	return k == KindRefresh || k == KindResetPassword
}

// Token is a persisted refresh or password-reset token. Records are created
// once and destroyed once; they are never updated in place.
type Token struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	Kind      Kind      `bson:"type"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	IsActive  bool      `bson:"is_active"`
}

// Claims are the decoded contents of a signed token.
type Claims struct {
	Subject   string
	Kind      Kind
	ExpiresAt time.Time
	// ID is the record identifier of a stateful token; empty for access tokens.
	ID string
}
