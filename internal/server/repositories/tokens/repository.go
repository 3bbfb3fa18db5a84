// Package tokens declares the storage contract for stateful (refresh and
// password-reset) tokens and provides its backends.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// Repository persists stateful tokens keyed by their raw string. Every method
// is a single atomic store operation.
type Repository interface {
	// Insert stores a new record. It returns common.ErrDuplicateToken when a
	// record with the same raw token already exists.
	Insert(ctx context.Context, token *models.Token) error

	// FindByToken returns the record for raw or common.ErrNotFound.
	FindByToken(ctx context.Context, raw string) (*models.Token, error)

	// DeleteByToken removes the record for raw and reports how many records
	// were removed (0 or 1). Deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, raw string) (int64, error)

	// DeleteExpired removes every record with ExpiresAt <= now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
