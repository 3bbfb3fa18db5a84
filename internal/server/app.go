// Package server wires the token service together: it opens the configured
// token store and optional denylist, builds the services and runs the gRPC
// server, the HTTP server and the expired-token sweeper until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/auth"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/denylist"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/usermgmt"

	gs "github.com/dmitrijs2005/tokenkeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/tokenkeeper/internal/server/http"
)

const denylistPrefix = "tokenkeeper:denied"

type App struct {
	config       *config.Config
	logger       logging.Logger
	store        repomanager.RepositoryManager
	denylist     *denylist.RedisDenylist
	tokenService *services.TokenService
	authService  *services.AuthService
	sweeper      *services.Sweeper
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(os.Stdout, c.IsDevelopment())
	clock := clockwork.NewRealClock()

	signer, err := auth.NewSigner(c.SigningAlgorithm, c.SecretKey, clock)
	if err != nil {
		return nil, fmt.Errorf("signer init error: %w", err)
	}

	store, err := repomanager.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}
	if err := store.RunMigrations(ctx); err != nil {
		store.Close(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, store: store}

	opts := []services.TokenServiceOption{services.WithLogger(logger)}
	if c.RedisURL != "" {
		dl, err := denylist.Open(ctx, c.RedisURL, denylistPrefix)
		if err != nil {
			store.Close(ctx)
			return nil, fmt.Errorf("denylist init error: %w", err)
		}
		app.denylist = dl
		opts = append(opts, services.WithDenylist(dl))
	} else {
		logger.Info(ctx, "redis url not set, access token revocation disabled")
	}

	app.tokenService = services.NewTokenService(store, signer, clock, c, opts...)
	users := usermgmt.New(c.UserManagementURL, c.UserManagementTimeout, logger)
	app.authService = services.NewAuthService(app.tokenService, users, users, logger)
	app.sweeper = services.NewSweeper(store, clock, c.SweepInterval, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.tokenService, app.authService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server stopped", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := hs.NewServer(app.config.EndpointAddrHTTP, app.logger, app.tokenService, app.authService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

// Run blocks until a shutdown signal arrives or a server fails, then
// releases the store and the denylist.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"grpc", app.config.EndpointAddrGRPC,
		"http", app.config.EndpointAddrHTTP,
		"storage", app.config.StorageDriver,
		"denylist", app.denylist != nil,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.sweeper.Run(ctx)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "Stopped")
}

func (app *App) close() {
	ctx := context.Background()
	if app.denylist != nil {
		if err := app.denylist.Close(); err != nil {
			app.logger.Error(ctx, "denylist close error", "error", err)
		}
	}
	if err := app.store.Close(ctx); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
}
