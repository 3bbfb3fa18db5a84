// Package api defines the wire contract of the token service: gRPC method
// names, request and response messages, the server registration helper and
// a client stub. Messages travel as JSON.
package api

type Empty struct{}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidateRequest checks Token as Kind ("access", "refresh" or
// "reset_password"). An empty Kind means access.
type ValidateRequest struct {
	Token string `json:"token"`
	Kind  string `json:"kind,omitempty"`
}

type ValidateResponse struct {
	Subject string `json:"subject"`
}

type RevokeRequest struct {
	Token string `json:"token"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

type VerifyPasswordResetTokenRequest struct {
	ResetToken string `json:"reset_token"`
}

type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type PingResponse struct {
	Status string `json:"status"`
}
