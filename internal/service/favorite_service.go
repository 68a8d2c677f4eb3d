package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "pharmadir/internal/errors"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
)

// FavoriteService maintains the favorite pharmacies stored on a user profile.
// Only the first id of the request is acted upon.
type FavoriteService interface {
	AddFavorit(ctx context.Context, input model.FavoritesInput, authHeader string) (*model.MessageResponse, error)
	RemoveFavorit(ctx context.Context, input model.FavoritesInput, authHeader string) (*model.MessageResponse, error)
}

type favoriteService struct {
	auth     AuthService
	profiles repository.ProfileRepository
	log      *zap.Logger
}

// NewFavoriteService creates a new favorites service.
func NewFavoriteService(auth AuthService, profiles repository.ProfileRepository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		auth:     auth,
		profiles: profiles,
		log:      log,
	}
}

func (s *favoriteService) loadProfile(ctx context.Context, authHeader string) (*model.Profile, error) {
	user, err := s.auth.ResolveUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByID(ctx, user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return profile, nil
}

func firstFavorite(input model.FavoritesInput) (string, error) {
	if len(input.Favorites) == 0 || input.Favorites[0] == "" {
		return "", apperrors.BadRequest("favorites must contain a pharmacy id")
	}
	return input.Favorites[0], nil
}

func (s *favoriteService) AddFavorit(ctx context.Context, input model.FavoritesInput, authHeader string) (*model.MessageResponse, error) {
	profile, err := s.loadProfile(ctx, authHeader)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to add favorite: "+err.Error())
	}

	candidate, err := firstFavorite(input)
	if err != nil {
		return nil, err
	}
	if profile.HasFavorite(candidate) {
		return nil, apperrors.BadRequest("Item already in favorites")
	}

	if err := s.profiles.AddFavorite(ctx, profile.UID, candidate); err != nil {
		s.log.Error("add favorite failed", zap.String("uid", profile.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to add favorite: "+err.Error())
	}

	return &model.MessageResponse{Message: "Favorit added successfully"}, nil
}

// RemoveFavorit drops the pharmacy from the profile. Removing an id that is
// not present succeeds.
func (s *favoriteService) RemoveFavorit(ctx context.Context, input model.FavoritesInput, authHeader string) (*model.MessageResponse, error) {
	profile, err := s.loadProfile(ctx, authHeader)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to remove favorite: "+err.Error())
	}

	candidate, err := firstFavorite(input)
	if err != nil {
		return nil, err
	}
	if !profile.HasFavorite(candidate) {
		return &model.MessageResponse{Message: "Favorit removed successfully"}, nil
	}

	if err := s.profiles.RemoveFavorite(ctx, profile.UID, candidate); err != nil {
		s.log.Error("remove favorite failed", zap.String("uid", profile.UID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to remove favorite: "+err.Error())
	}

	return &model.MessageResponse{Message: "Favorit removed successfully"}, nil
}
