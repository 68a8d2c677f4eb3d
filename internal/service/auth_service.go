package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pharmadir/internal/auth"
	apperrors "pharmadir/internal/errors"
	"pharmadir/internal/identity"
	"pharmadir/internal/mail"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
)

const (
	msgRegistered    = "Registration successful! Please check your email for verification."
	msgResetSent     = "Password reset instructions have been sent to your email."
	msgPasswordReset = "Password has been successfully reset. You can now login."
)

// AuthService handles registration, login and password flows.
type AuthService interface {
	Register(ctx context.Context, input model.RegisterInput) (*model.MessageResponse, error)
	Login(ctx context.Context, input model.LoginInput) (*model.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) (*model.MessageResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error)
	ExtractEmailFromToken(token string) (string, error)
	// ResolveUser maps an "Authorization: Bearer <token>" header to the
	// provider account it was issued for.
	ResolveUser(ctx context.Context, authHeader string) (*model.User, error)
}

type authService struct {
	provider   identity.Provider
	client     identity.Client
	profiles   repository.ProfileRepository
	mailer     mail.Sender
	jwtService *auth.JWTService
	log        *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	provider identity.Provider,
	client identity.Client,
	profiles repository.ProfileRepository,
	mailer mail.Sender,
	jwtService *auth.JWTService,
	log *zap.Logger,
) AuthService {
	return &authService{
		provider:   provider,
		client:     client,
		profiles:   profiles,
		mailer:     mailer,
		jwtService: jwtService,
		log:        log,
	}
}

// Register creates the provider account and its profile, then sends one
// verification email.
func (s *authService) Register(ctx context.Context, input model.RegisterInput) (*model.MessageResponse, error) {
	user, err := s.provider.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, apperrors.BadRequest("email already exists")
		}
		s.log.Warn("create user failed", zap.String("email", input.Email), zap.Error(err))
		return nil, apperrors.Wrap(err, err.Error())
	}

	profile := &model.Profile{
		UID:       user.UID,
		Email:     input.Email,
		Name:      input.Name,
		Role:      model.RoleUser,
		Favorites: []string{},
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.Error("create profile failed", zap.String("uid", user.UID), zap.Error(err))
		// roll back the provider account
		if delErr := s.provider.DeleteUser(ctx, user.UID); delErr != nil {
			s.log.Error("orphaned provider account", zap.String("uid", user.UID), zap.Error(delErr))
		}
		return nil, apperrors.Wrap(err, "Failed to create user profile")
	}

	link, err := s.provider.EmailVerificationLink(ctx, input.Email)
	if err != nil {
		s.log.Error("verification link failed", zap.String("uid", user.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to generate verification link")
	}

	if err := s.mailer.SendVerificationEmail(ctx, input.Email, link, input.Name); err != nil {
		s.log.Error("send verification email failed", zap.String("uid", user.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to send verification email")
	}

	return &model.MessageResponse{Message: msgRegistered}, nil
}

// Login checks credentials with the provider and issues a session token.
func (s *authService) Login(ctx context.Context, input model.LoginInput) (*model.LoginResponse, error) {
	uid, err := s.client.SignInWithEmailAndPassword(ctx, input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidCredentials) {
			s.log.Warn("sign in failed", zap.String("email", input.Email), zap.Error(err))
		}
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	user, err := s.provider.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperrors.NotFound("User Not Found")
		}
		return nil, apperrors.Wrap(err, "Failed to load user")
	}

	profile, err := s.profiles.FindByID(ctx, uid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("load profile failed", zap.String("uid", uid), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to load user profile")
	}
	role := profile.RoleOrDefault()

	token, err := s.jwtService.GenerateSessionToken(user.UID, user.Email, string(role))
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to issue token")
	}

	return &model.LoginResponse{
		Token: token,
		User: model.SessionUser{
			Email: user.Email,
			Name:  user.DisplayName,
			Role:  role,
		},
	}, nil
}

// ForgotPassword sends a provider reset link to a known account.
func (s *authService) ForgotPassword(ctx context.Context, email string) (*model.MessageResponse, error) {
	user, err := s.provider.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperrors.NotFound("User Not Found")
		}
		return nil, apperrors.Wrap(err, "Failed to look up user")
	}

	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		s.log.Error("reset link failed", zap.String("uid", user.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to generate password reset link")
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, email, link, user.DisplayName); err != nil {
		s.log.Error("send reset email failed", zap.String("uid", user.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to send password reset email")
	}

	return &model.MessageResponse{Message: msgResetSent}, nil
}

// ResetPassword resolves a provider reset code and sets the new password.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error) {
	email, err := s.client.VerifyPasswordResetCode(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidResetCode) {
			s.log.Warn("verify reset code failed", zap.Error(err))
		}
		return nil, apperrors.Unauthorized("Invalid or expired reset token")
	}

	user, err := s.provider.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NotFound("User Not Found")
	}

	if err := s.provider.UpdatePassword(ctx, user.UID, newPassword); err != nil {
		s.log.Error("update password failed", zap.String("uid", user.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to reset password")
	}

	return &model.MessageResponse{Message: msgPasswordReset}, nil
}

func (s *authService) ExtractEmailFromToken(token string) (string, error) {
	email, err := s.jwtService.ExtractEmail(token)
	if err != nil {
		return "", apperrors.Unauthorized("Invalid or expired token")
	}
	return email, nil
}

func (s *authService) ResolveUser(ctx context.Context, authHeader string) (*model.User, error) {
	token, err := auth.BearerToken(authHeader)
	if err != nil {
		return nil, apperrors.Unauthorized("Missing bearer token")
	}

	email, err := s.ExtractEmailFromToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NotFound("User Not Found")
	}
	return user, nil
}
