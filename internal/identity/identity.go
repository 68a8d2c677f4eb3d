// Package identity wraps the external identity provider: account management on
// the admin side and credential checks on the client side.
package identity

import (
	"context"
	"errors"

	"pharmadir/internal/model"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering an email that is already in use.
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials is returned when an email/password pair is rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetCode is returned when a password reset code is unknown or expired.
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
)

// Provider manages accounts with administrative privileges.
type Provider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUser(ctx context.Context, uid string) (*model.User, error)
	UpdatePassword(ctx context.Context, uid, password string) error
	DeleteUser(ctx context.Context, uid string) error
	EmailVerificationLink(ctx context.Context, email string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// Client performs the end-user flows that require the user's own credentials.
type Client interface {
	// SignInWithEmailAndPassword returns the UID of the authenticated account.
	SignInWithEmailAndPassword(ctx context.Context, email, password string) (string, error)
	// VerifyPasswordResetCode returns the email the reset code was issued for.
	VerifyPasswordResetCode(ctx context.Context, code string) (string, error)
}
