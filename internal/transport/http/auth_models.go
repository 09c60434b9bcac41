package http

import (
	"time"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/service"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid email or password"`
}

// AuthUser is the sanitized user projection returned by every endpoint.
// Password hash and salt never leave the server.
type AuthUser struct {
	ID        string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Username  string    `json:"username" example:"alice"`
	FullName  string    `json:"full_name" example:"Alice Liddell"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-01-02T09:30:00Z"`
}

// AuthTokenResponse is returned by endpoints that mint session tokens.
type AuthTokenResponse struct {
	AccessToken      string   `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	AccessExpiresAt  string   `json:"access_expires_at" example:"2025-01-01T12:15:00Z"`
	RefreshToken     string   `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshExpiresAt string   `json:"refresh_expires_at" example:"2025-01-08T12:00:00Z"`
	User             AuthUser `json:"user"`
}

// RegisterRequest carries registration fields.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	FullName string `json:"full_name" example:"Alice Liddell"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest carries login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// GoogleLoginRequest carries the Google ID token.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UpdateProfileRequest captures profile updates; omitted fields are untouched.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" example:"Alice L."`
	Username *string `json:"username,omitempty" example:"alice2"`
}

// ChangePasswordRequest captures the payload for password updates.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"secret1"`
	NewPassword     string `json:"new_password" example:"secret2"`
}

// ForgotPasswordRequest captures the payload for requesting a reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetPasswordRequest captures the replacement password; the token travels in
// the URL path.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" example:"secret2"`
}

func buildAuthUser(user *domain.User) AuthUser {
	return AuthUser{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func buildTokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		AccessToken:      result.AccessToken,
		AccessExpiresAt:  result.AccessExpiresAt.Format(time.RFC3339),
		RefreshToken:     result.RefreshToken,
		RefreshExpiresAt: result.RefreshExpiresAt.Format(time.RFC3339),
		User:             buildAuthUser(result.User),
	}
}
