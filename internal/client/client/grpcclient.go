package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// authenticatedMethods carry the session access token and are retried once
// after a refresh when it has expired.
var authenticatedMethods = map[string]bool{
	api.TokenService_RevokeAccess_FullMethodName:               true,
	api.TokenService_GeneratePasswordResetToken_FullMethodName: true,
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.TokenServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if !authenticatedMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := s.Tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if api.StatusReason(err) != api.ReasonTokenExpired || refresh == "" {
		return err
	}

	pair, rerr := s.client.Refresh(ctx, &api.RefreshRequest{RefreshToken: refresh})
	if rerr != nil {
		return err
	}
	s.setTokens(pair.AccessToken, pair.RefreshToken)

	return invoker(withAccessToken(ctx, pair.AccessToken), method, req, reply, cc, opts...)
}

func NewTokenKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewTokenServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Tokens returns the current session tokens.
func (s *GRPCClient) Tokens() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.Empty{})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, identifier string, password []byte) error {
	pair, err := s.client.Login(ctx, &api.LoginRequest{Identifier: identifier, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (s *GRPCClient) Refresh(ctx context.Context) error {
	_, refresh := s.Tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}
	pair, err := s.client.Refresh(ctx, &api.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Logout revokes the refresh token and forgets the session. The session is
// cleared even if the server no longer knows the token.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.Tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}
	_, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refresh})
	err = s.mapError(err)
	if err == nil || errors.Is(err, ErrNotFound) {
		s.setTokens("", "")
	}
	return err
}

func (s *GRPCClient) Validate(ctx context.Context, token, kind string) (string, error) {
	resp, err := s.client.Validate(ctx, &api.ValidateRequest{Token: token, Kind: kind})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Subject, nil
}

func (s *GRPCClient) RequestPasswordReset(ctx context.Context) (string, error) {
	if access, _ := s.Tokens(); access == "" {
		return "", ErrNotLoggedIn
	}
	resp, err := s.client.GeneratePasswordResetToken(ctx, &api.Empty{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ResetToken, nil
}

func (s *GRPCClient) VerifyPasswordResetToken(ctx context.Context, resetToken string) (string, error) {
	resp, err := s.client.VerifyPasswordResetToken(ctx, &api.VerifyPasswordResetTokenRequest{ResetToken: resetToken})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Subject, nil
}

func (s *GRPCClient) ResetPassword(ctx context.Context, resetToken string, newPassword, confirmPassword []byte) error {
	_, err := s.client.ResetPassword(ctx, &api.ResetPasswordRequest{
		ResetToken:      resetToken,
		NewPassword:     string(newPassword),
		ConfirmPassword: string(confirmPassword),
	})
	return s.mapError(err)
}

// RevokeAccess denies the session access token on the server and forgets it.
func (s *GRPCClient) RevokeAccess(ctx context.Context) error {
	access, refresh := s.Tokens()
	if access == "" {
		return ErrNotLoggedIn
	}
	if _, err := s.client.RevokeAccess(ctx, &api.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.setTokens("", refresh)
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.FailedPrecondition, codes.Unimplemented:
		return fmt.Errorf("%w: %s", ErrNotSupported, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
