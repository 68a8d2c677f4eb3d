package model

import (
	"time"

	"gorm.io/datatypes"
)

// Role is the authorization role stored on a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record held by the identity provider.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
}

// Profile is the application-side user document, keyed by the provider UID.
type Profile struct {
	UID       string                      `json:"uid" firestore:"-" gorm:"type:varchar(128);primaryKey"`
	Email     string                      `json:"email" firestore:"email" gorm:"size:255;index"`
	Name      string                      `json:"name" firestore:"name" gorm:"size:255"`
	Role      Role                        `json:"role" firestore:"role,omitempty" gorm:"type:varchar(16)"`
	Favorites datatypes.JSONSlice[string] `json:"favorites" firestore:"favorites" gorm:"type:json"`
	CreatedAt time.Time                   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// RoleOrDefault returns the profile role, falling back to RoleUser.
func (p *Profile) RoleOrDefault() Role {
	if p == nil || p.Role == "" {
		return RoleUser
	}
	return p.Role
}

// HasFavorite reports whether pharmacyID is already in the favorites list.
func (p *Profile) HasFavorite(pharmacyID string) bool {
	for _, id := range p.Favorites {
		if id == pharmacyID {
			return true
		}
	}
	return false
}

// TableName keeps the relational table aligned with the document collection.
func (Profile) TableName() string {
	return "users"
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginInput is the credential pair used to sign in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput requests a reset link.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput carries the provider reset code and the new password.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// SessionUser is the user summary returned on login.
type SessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// FavoritesInput carries the pharmacy ids to add or remove. Only the first
// element is acted upon.
type FavoritesInput struct {
	Favorites []string `json:"favorites"`
}

// MessageResponse is a plain confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
