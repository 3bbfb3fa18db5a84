package http

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type userRequest struct {
	UserID string `json:"user_id"`
}

type validateRequest struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Authentication Service"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	pair, err := s.auth.Login(r.Context(), identifier, req.Password)
	if err != nil {
		s.fail(w, r, "Failed to login. Try Again Later.", err)
		return
	}
	writeSuccess(w, "Login successful", map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Token == "" {
		s.fail(w, r, "Logout failed", fmt.Errorf("%w: token is required", common.ErrValidation))
		return
	}
	if err := s.auth.Logout(r.Context(), req.Token); err != nil {
		s.fail(w, r, "Logout failed", err)
		return
	}
	writeSuccess(w, "User Logged Out Successfully", nil)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	pair, err := s.tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.fail(w, r, "Token refresh failed", err)
		return
	}
	writeSuccess(w, "Token refreshed successfully", map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := s.auth.ResetPassword(r.Context(), req.ResetToken, req.NewPassword, req.ConfirmPassword); err != nil {
		s.fail(w, r, "Password reset failed", err)
		return
	}
	writeSuccess(w, "Password reset successful", nil)
}

func (s *Server) generateResetToken(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.UserID == "" {
		s.fail(w, r, "Error While Generating Reset Token.", fmt.Errorf("%w: user_id is required", common.ErrValidation))
		return
	}
	tok, err := s.auth.RequestPasswordReset(r.Context(), req.UserID)
	if err != nil {
		s.fail(w, r, "Error While Generating Reset Token.", err)
		return
	}
	writeSuccess(w, "Password reset token generated successfully.", map[string]string{"reset_token": tok})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	kind := models.Kind(req.Kind)
	if kind == "" {
		kind = models.KindAccess
	}
	if !kind.Valid() {
		s.fail(w, r, "Token validation failed", fmt.Errorf("%w: unknown token kind %q", common.ErrValidation, req.Kind))
		return
	}

	sub, err := s.tokens.ValidateToken(r.Context(), req.Token, kind)
	if err != nil {
		s.fail(w, r, "Token validation failed", err)
		return
	}
	writeSuccess(w, "Token is valid", map[string]any{"valid": true, "user_id": sub, "kind": kind})
}

func (s *Server) revoke(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := s.tokens.RevokeToken(r.Context(), req.Token); err != nil {
		s.fail(w, r, "Token revocation failed", err)
		return
	}
	writeSuccess(w, "Token revoked successfully", nil)
}

// revokeAccess denies the bearer access token of the caller.
func (s *Server) revokeAccess(w http.ResponseWriter, r *http.Request) {
	access := bearerToken(r)
	if access == "" {
		writeFail(w, http.StatusUnauthorized, api.ReasonMissingToken, "Token revocation failed", "missing bearer token")
		return
	}
	if err := s.tokens.RevokeAccessToken(r.Context(), access); err != nil {
		s.fail(w, r, "Token revocation failed", err)
		return
	}
	writeSuccess(w, "Access token revoked successfully", nil)
}
