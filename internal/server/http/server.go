// Package http serves the token service over JSON/HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	tokens  *services.TokenService
	auth    *services.AuthService
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, ts *services.TokenService, as *services.AuthService) *Server {
	return &Server{
		address: a,
		tokens:  ts,
		auth:    as,
		logger:  l.With("module", "http_server"),
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.root).Methods(http.MethodGet)

	a := r.PathPrefix("/service/auth").Subrouter()
	a.HandleFunc("/login", s.login).Methods(http.MethodPost)
	a.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	a.HandleFunc("/refresh", s.refresh).Methods(http.MethodPost)
	a.HandleFunc("/reset-password", s.resetPassword).Methods(http.MethodPost)

	t := r.PathPrefix("/service/token").Subrouter()
	t.HandleFunc("/generate-password-reset-token", s.generateResetToken).Methods(http.MethodPost)
	t.HandleFunc("/validate", s.validate).Methods(http.MethodPost)
	t.HandleFunc("/revoke", s.revoke).Methods(http.MethodPost)
	t.HandleFunc("/revoke-access", s.revokeAccess).Methods(http.MethodPost)

	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis and shuts down gracefully when ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func decodeRequest[T any](w http.ResponseWriter, r *http.Request, req *T) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeFail(w, http.StatusBadRequest, api.ReasonValidation, "Invalid request body", err.Error())
		return false
	}
	return true
}

// fail writes the error envelope. The detail is the sentinel text of the
// error kind; wrapped parser, driver or upstream details are only logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	code := httpStatus(err)
	kind := api.Classify(err)

	switch {
	case code == http.StatusInternalServerError:
		s.logger.Error(r.Context(), message, "path", r.URL.Path, "error", err)
		writeFail(w, code, kind.Reason, internalErrorMessage, "internal error")
	case code > http.StatusInternalServerError:
		s.logger.Error(r.Context(), message, "path", r.URL.Path, "error", err)
		writeFail(w, code, kind.Reason, message, kind.Err.Error())
	case kind.Err == common.ErrValidation:
		writeFail(w, code, kind.Reason, message, err.Error())
	default:
		s.logger.Debug(r.Context(), message, "path", r.URL.Path, "error", err)
		writeFail(w, code, kind.Reason, message, kind.Err.Error())
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if t, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(t)
	}
	return ""
}
