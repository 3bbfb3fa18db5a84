package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
)

// Sweeper periodically deletes expired token records. Expired records are
// already rejected on validation; sweeping only reclaims storage.
type Sweeper struct {
	store    TokenStore
	clock    clockwork.Clock
	interval time.Duration
	logger   logging.Logger
}

func NewSweeper(store TokenStore, clock clockwork.Clock, interval time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		clock:    clock,
		interval: interval,
		logger:   logger.With("module", "sweeper"),
	}
}

// SweepOnce deletes every record whose expiry is not after now.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.store.Tokens().DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// Run sweeps every interval until ctx is cancelled. A non-positive interval
// disables sweeping and Run returns immediately.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info(ctx, "expired token sweep disabled")
		return
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			n, err := s.SweepOnce(ctx)
			if err != nil {
				s.logger.Error(ctx, "expired token sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Info(ctx, "expired tokens removed", "count", n)
			}
		}
	}
}
