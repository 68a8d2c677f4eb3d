package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"pharmadir/internal/model"
)

// FirebaseProvider implements Provider on top of the Firebase Admin SDK.
type FirebaseProvider struct {
	client *auth.Client
}

var _ Provider = (*FirebaseProvider)(nil)

// NewFirebaseProvider wraps an initialized Firebase auth client.
func NewFirebaseProvider(client *auth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (*model.User, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return toUser(record), nil
}

func (p *FirebaseProvider) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return toUser(record), nil
}

func (p *FirebaseProvider) GetUser(ctx context.Context, uid string) (*model.User, error) {
	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return toUser(record), nil
}

func (p *FirebaseProvider) UpdatePassword(ctx context.Context, uid, password string) error {
	if _, err := p.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password)); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (p *FirebaseProvider) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("email verification link: %w", err)
	}
	return link, nil
}

func (p *FirebaseProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("password reset link: %w", err)
	}
	return link, nil
}

func toUser(record *auth.UserRecord) *model.User {
	return &model.User{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		EmailVerified: record.EmailVerified,
	}
}
