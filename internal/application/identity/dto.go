package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignUpRequest creates an admin account; the invite code is shared out of band
type SignUpRequest struct {
	Email      string `json:"email" binding:"required,email,max=200"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	InviteCode string `json:"inviteCode" binding:"required,max=200"`
}

// SignInRequest authenticates an admin
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,max=72"`
}

// SignOutInput identifies the token to revoke
type SignOutInput struct {
	TokenID   string
	ExpiresAt time.Time
}

// SessionResponse is returned after sign-up and sign-in
type SessionResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        UserInfo  `json:"user"`
}

// UserInfo represents the signed-in admin
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	LastSignInAt *time.Time `json:"lastSignInAt,omitempty"`
}
