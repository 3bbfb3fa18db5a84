// Package auth signs and verifies the service's JWTs.
package auth

import (
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// Clock supplies the current time used for expiry checks.
type Clock interface {
	Now() time.Time
}

// tokenClaims is the wire form: sub, exp, type and, for stateful tokens, jti.
type tokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Signer encodes and decodes signed tokens with a single key and algorithm.
// It is safe for concurrent use.
type Signer struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	clock     Clock
}

// NewSigner builds a Signer for alg. For HS256/HS384/HS512 key is the shared
// secret; for EdDSA it is a PEM-encoded Ed25519 private key.
func NewSigner(alg, key string, clock Clock) (*Signer, error) {
	if key == "" {
		return nil, errors.New("signing key is empty")
	}

	s := &Signer{clock: clock}

	switch alg {
	case jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg():
		s.method = jwt.GetSigningMethod(alg)
		s.signKey = []byte(key)
		s.verifyKey = []byte(key)
	case jwt.SigningMethodEdDSA.Alg():
		priv, err := jwt.ParseEdPrivateKeyFromPEM([]byte(key))
		if err != nil {
			return nil, fmt.Errorf("parse ed25519 key: %w", err)
		}
		edKey, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.New("parse ed25519 key: not an ed25519 private key")
		}
		s.method = jwt.SigningMethodEdDSA
		s.signKey = crypto.Signer(edKey)
		s.verifyKey = edKey.Public()
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	return s, nil
}

// Algorithm returns the JWS "alg" value the signer uses.
func (s *Signer) Algorithm() string {
	return s.method.Alg()
}

// Encode signs claims. Output is deterministic for identical claims.
// ExpiresAt is truncated to whole seconds.
func (s *Signer) Encode(c models.Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, tokenClaims{
		Type: string(c.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
			ID:        c.ID,
		},
	})

	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString and returns its claims. Checks run in order:
// signature and structure (common.ErrInvalidSignature), expiry against the
// clock (common.ErrTokenExpired), then the kind (common.ErrKindMismatch).
func (s *Signer) Decode(tokenString string, expected models.Kind) (models.Claims, error) {
	claims := &tokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.verifyKey, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, common.ErrTokenExpired
		}
		return models.Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
	}

	if claims.Subject == "" {
		return models.Claims{}, fmt.Errorf("%w: missing subject", common.ErrInvalidSignature)
	}

	if models.Kind(claims.Type) != expected {
		return models.Claims{}, common.ErrKindMismatch
	}

	return models.Claims{
		Subject:   claims.Subject,
		Kind:      models.Kind(claims.Type),
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
