package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "tokenkeeper.TokenService"

const (
	TokenService_Login_FullMethodName                      = "/tokenkeeper.TokenService/Login"
	TokenService_Logout_FullMethodName                     = "/tokenkeeper.TokenService/Logout"
	TokenService_Refresh_FullMethodName                    = "/tokenkeeper.TokenService/Refresh"
	TokenService_Validate_FullMethodName                   = "/tokenkeeper.TokenService/Validate"
	TokenService_Revoke_FullMethodName                     = "/tokenkeeper.TokenService/Revoke"
	TokenService_RevokeAccess_FullMethodName               = "/tokenkeeper.TokenService/RevokeAccess"
	TokenService_GeneratePasswordResetToken_FullMethodName = "/tokenkeeper.TokenService/GeneratePasswordResetToken"
	TokenService_VerifyPasswordResetToken_FullMethodName   = "/tokenkeeper.TokenService/VerifyPasswordResetToken"
	TokenService_ResetPassword_FullMethodName              = "/tokenkeeper.TokenService/ResetPassword"
	TokenService_Ping_FullMethodName                       = "/tokenkeeper.TokenService/Ping"
)

// TokenServiceServer is the server API for the token service.
type TokenServiceServer interface {
	Login(context.Context, *LoginRequest) (*TokenPair, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	Refresh(context.Context, *RefreshRequest) (*TokenPair, error)
	Validate(context.Context, *ValidateRequest) (*ValidateResponse, error)
	Revoke(context.Context, *RevokeRequest) (*Empty, error)
	RevokeAccess(context.Context, *Empty) (*Empty, error)
	GeneratePasswordResetToken(context.Context, *Empty) (*ResetTokenResponse, error)
	VerifyPasswordResetToken(context.Context, *VerifyPasswordResetTokenRequest) (*ValidateResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*Empty, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
}

// UnimplementedTokenServiceServer answers every method with codes.Unimplemented.
type UnimplementedTokenServiceServer struct{}

func (UnimplementedTokenServiceServer) Login(context.Context, *LoginRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedTokenServiceServer) Logout(context.Context, *LogoutRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedTokenServiceServer) Refresh(context.Context, *RefreshRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedTokenServiceServer) Validate(context.Context, *ValidateRequest) (*ValidateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Validate not implemented")
}
func (UnimplementedTokenServiceServer) Revoke(context.Context, *RevokeRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Revoke not implemented")
}
func (UnimplementedTokenServiceServer) RevokeAccess(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeAccess not implemented")
}
func (UnimplementedTokenServiceServer) GeneratePasswordResetToken(context.Context, *Empty) (*ResetTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GeneratePasswordResetToken not implemented")
}
func (UnimplementedTokenServiceServer) VerifyPasswordResetToken(context.Context, *VerifyPasswordResetTokenRequest) (*ValidateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyPasswordResetToken not implemented")
}
func (UnimplementedTokenServiceServer) ResetPassword(context.Context, *ResetPasswordRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPassword not implemented")
}
func (UnimplementedTokenServiceServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(TokenServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TokenServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TokenServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TokenService_ServiceDesc describes the token service for grpc.ServiceRegistrar.
var TokenService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TokenServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(TokenService_Login_FullMethodName, TokenServiceServer.Login)},
		{MethodName: "Logout", Handler: unary(TokenService_Logout_FullMethodName, TokenServiceServer.Logout)},
		{MethodName: "Refresh", Handler: unary(TokenService_Refresh_FullMethodName, TokenServiceServer.Refresh)},
		{MethodName: "Validate", Handler: unary(TokenService_Validate_FullMethodName, TokenServiceServer.Validate)},
		{MethodName: "Revoke", Handler: unary(TokenService_Revoke_FullMethodName, TokenServiceServer.Revoke)},
		{MethodName: "RevokeAccess", Handler: unary(TokenService_RevokeAccess_FullMethodName, TokenServiceServer.RevokeAccess)},
		{MethodName: "GeneratePasswordResetToken", Handler: unary(TokenService_GeneratePasswordResetToken_FullMethodName, TokenServiceServer.GeneratePasswordResetToken)},
		{MethodName: "VerifyPasswordResetToken", Handler: unary(TokenService_VerifyPasswordResetToken_FullMethodName, TokenServiceServer.VerifyPasswordResetToken)},
		{MethodName: "ResetPassword", Handler: unary(TokenService_ResetPassword_FullMethodName, TokenServiceServer.ResetPassword)},
		{MethodName: "Ping", Handler: unary(TokenService_Ping_FullMethodName, TokenServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tokenkeeper",
}

func RegisterTokenServiceServer(s grpc.ServiceRegistrar, srv TokenServiceServer) {
	s.RegisterService(&TokenService_ServiceDesc, srv)
}

// TokenServiceClient is the client API for the token service.
type TokenServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error)
	Validate(ctx context.Context, in *ValidateRequest, opts ...grpc.CallOption) (*ValidateResponse, error)
	Revoke(ctx context.Context, in *RevokeRequest, opts ...grpc.CallOption) (*Empty, error)
	RevokeAccess(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	GeneratePasswordResetToken(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ResetTokenResponse, error)
	VerifyPasswordResetToken(ctx context.Context, in *VerifyPasswordResetTokenRequest, opts ...grpc.CallOption) (*ValidateResponse, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*Empty, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
}

type tokenServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTokenServiceClient(cc grpc.ClientConnInterface) TokenServiceClient {
	return &tokenServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, TokenService_Login_FullMethodName, in, opts)
}

func (c *tokenServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, TokenService_Logout_FullMethodName, in, opts)
}

func (c *tokenServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, TokenService_Refresh_FullMethodName, in, opts)
}

func (c *tokenServiceClient) Validate(ctx context.Context, in *ValidateRequest, opts ...grpc.CallOption) (*ValidateResponse, error) {
	return invoke[ValidateResponse](ctx, c.cc, TokenService_Validate_FullMethodName, in, opts)
}

func (c *tokenServiceClient) Revoke(ctx context.Context, in *RevokeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, TokenService_Revoke_FullMethodName, in, opts)
}

func (c *tokenServiceClient) RevokeAccess(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, TokenService_RevokeAccess_FullMethodName, in, opts)
}

func (c *tokenServiceClient) GeneratePasswordResetToken(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ResetTokenResponse, error) {
	return invoke[ResetTokenResponse](ctx, c.cc, TokenService_GeneratePasswordResetToken_FullMethodName, in, opts)
}

func (c *tokenServiceClient) VerifyPasswordResetToken(ctx context.Context, in *VerifyPasswordResetTokenRequest, opts ...grpc.CallOption) (*ValidateResponse, error) {
	return invoke[ValidateResponse](ctx, c.cc, TokenService_VerifyPasswordResetToken_FullMethodName, in, opts)
}

func (c *tokenServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, TokenService_ResetPassword_FullMethodName, in, opts)
}

func (c *tokenServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, TokenService_Ping_FullMethodName, in, opts)
}
