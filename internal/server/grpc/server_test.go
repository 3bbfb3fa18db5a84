package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/auth"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, identifier, password string) (string, error) {
	if identifier == "alice" && password == "secret" {
		return "42", nil
	}
	return "", common.ErrInvalidCredentials
}

type stubUpdater struct {
	updated map[string]string
}

func (u *stubUpdater) UpdatePassword(_ context.Context, userID, pw string) error {
	u.updated[userID] = pw
	return nil
}

type harness struct {
	server  *GRPCServer
	tokens  *services.TokenService
	clock   *clockwork.FakeClock
	updater *stubUpdater
}

func newHarness(t *testing.T, opts ...services.TokenServiceOption) *harness {
	t.Helper()
	cfg := &config.Config{
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
	clock := clockwork.NewFakeClockAt(epoch)
	signer, err := auth.NewSigner(config.AlgHS256, "k", clock)
	require.NoError(t, err)

	ts := services.NewTokenService(repomanager.NewMemoryManager(), signer, clock, cfg, opts...)
	up := &stubUpdater{updated: map[string]string{}}
	as := services.NewAuthService(ts, stubVerifier{}, up, logging.Nop{})

	return &harness{
		server:  NewGRPCServer("127.0.0.1:0", logging.Nop{}, ts, as),
		tokens:  ts,
		clock:   clock,
		updater: up,
	}
}

// dial serves h over an in-memory listener and returns a connected client.
func (h *harness) dial(t *testing.T) api.TokenServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.server.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return api.NewTokenServiceClient(conn)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- h.server.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.server.address = "127.0.0.1:99999"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := h.server.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
