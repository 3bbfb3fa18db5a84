package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
)

const tokenTypeBearer = "bearer"

func pairResponse(p *services.TokenPair) *api.TokenPair {
	return &api.TokenPair{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, TokenType: tokenTypeBearer}
}

func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal || status.Code(st) == codes.Unavailable {
		s.logger.Error(ctx, op+" failed", "error", err)
	} else {
		s.logger.Debug(ctx, op+" rejected", "error", err)
	}
	return st
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, name)
	}
	return nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenPair, error) {
	pair, err := s.auth.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	return pairResponse(pair), nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.Empty, error) {
	if err := required("refresh_token", req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	if err := s.auth.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *api.RefreshRequest) (*api.TokenPair, error) {
	if err := required("refresh_token", req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	pair, err := s.tokens.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, "refresh", err)
	}
	return pairResponse(pair), nil
}

func (s *GRPCServer) Validate(ctx context.Context, req *api.ValidateRequest) (*api.ValidateResponse, error) {
	kind := models.Kind(req.Kind)
	if kind == "" {
		kind = models.KindAccess
	}
	if !kind.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown token kind %q", req.Kind)
	}

	sub, err := s.tokens.ValidateToken(ctx, req.Token, kind)
	if err != nil {
		return nil, s.fail(ctx, "validate", err)
	}
	return &api.ValidateResponse{Subject: sub}, nil
}

func (s *GRPCServer) Revoke(ctx context.Context, req *api.RevokeRequest) (*api.Empty, error) {
	if err := required("token", req.Token); err != nil {
		return nil, toStatus(err)
	}
	if err := s.tokens.RevokeToken(ctx, req.Token); err != nil {
		return nil, s.fail(ctx, "revoke", err)
	}
	return &api.Empty{}, nil
}

// RevokeAccess denies the access token that authenticated the call.
func (s *GRPCServer) RevokeAccess(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	if err := s.tokens.RevokeAccessToken(ctx, accessTokenFromContext(ctx)); err != nil {
		return nil, s.fail(ctx, "revoke access", err)
	}
	return &api.Empty{}, nil
}

// GeneratePasswordResetToken issues a reset token for the authenticated user.
func (s *GRPCServer) GeneratePasswordResetToken(ctx context.Context, _ *api.Empty) (*api.ResetTokenResponse, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	tok, err := s.auth.RequestPasswordReset(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "generate reset token", err)
	}
	return &api.ResetTokenResponse{ResetToken: tok}, nil
}

func (s *GRPCServer) VerifyPasswordResetToken(ctx context.Context, req *api.VerifyPasswordResetTokenRequest) (*api.ValidateResponse, error) {
	sub, err := s.tokens.VerifyPasswordResetToken(ctx, req.ResetToken)
	if err != nil {
		return nil, s.fail(ctx, "verify reset token", err)
	}
	return &api.ValidateResponse{Subject: sub}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.ResetPasswordRequest) (*api.Empty, error) {
	if err := required("reset_token", req.ResetToken); err != nil {
		return nil, toStatus(err)
	}
	if err := s.auth.ResetPassword(ctx, req.ResetToken, req.NewPassword, req.ConfirmPassword); err != nil {
		return nil, s.fail(ctx, "reset password", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}
