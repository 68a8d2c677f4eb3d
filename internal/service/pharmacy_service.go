package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmadir/internal/cache"
	apperrors "pharmadir/internal/errors"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
)

const (
	pharmacyCacheTTL     = 5 * time.Minute
	pharmacyListCacheKey = "pharmacies:all"
)

// PharmacyService manages pharmacy records.
type PharmacyService interface {
	Create(ctx context.Context, input model.CreatePharmacyInput) (*model.CreatePharmacyResponse, error)
	FindAll(ctx context.Context) ([]model.Pharmacy, error)
	FindOne(ctx context.Context, id string) (*model.Pharmacy, error)
	Update(ctx context.Context, id string, input model.UpdatePharmacyInput) (*model.MessageResponse, error)
	Remove(ctx context.Context, id string) (*model.MessageResponse, error)
	UpdateStatus(ctx context.Context, id string) (*model.MessageResponse, error)
}

type pharmacyService struct {
	repo  repository.PharmacyRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewPharmacyService creates a new pharmacy service. cache may be nil.
func NewPharmacyService(repo repository.PharmacyRepository, cache *cache.Client, log *zap.Logger) PharmacyService {
	return &pharmacyService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *pharmacyService) cacheKey(id string) string {
	return fmt.Sprintf("pharmacy:%s", id)
}

func (s *pharmacyService) invalidate(ctx context.Context, id string) {
	_ = s.cache.Delete(ctx, s.cacheKey(id), pharmacyListCacheKey)
}

func (s *pharmacyService) Create(ctx context.Context, input model.CreatePharmacyInput) (*model.CreatePharmacyResponse, error) {
	id, err := s.repo.Create(ctx, input.ToPharmacy())
	if err != nil {
		s.log.Error("create pharmacy failed", zap.String("name", input.Name), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to create pharmacy")
	}
	_ = s.cache.Delete(ctx, pharmacyListCacheKey)

	return &model.CreatePharmacyResponse{
		Message:    "Pharmacy created successfully",
		PharmacyID: id,
	}, nil
}

func (s *pharmacyService) FindAll(ctx context.Context) ([]model.Pharmacy, error) {
	if data, _ := s.cache.Get(ctx, pharmacyListCacheKey); data != nil {
		var cached []model.Pharmacy
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	pharmacies, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list pharmacies failed", zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to fetch pharmacies")
	}
	if pharmacies == nil {
		pharmacies = []model.Pharmacy{}
	}

	if payload, err := json.Marshal(pharmacies); err == nil {
		_ = s.cache.Set(ctx, pharmacyListCacheKey, payload, pharmacyCacheTTL)
	}
	return pharmacies, nil
}

// FindOne returns a pharmacy, served from cache when possible.
func (s *pharmacyService) FindOne(ctx context.Context, id string) (*model.Pharmacy, error) {
	if id == "" {
		return nil, apperrors.BadRequest("Pharmacy ID is required")
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Pharmacy
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	pharmacy, err := s.load(ctx, id, "Failed to fetch pharmacy")
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(pharmacy); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, pharmacyCacheTTL)
	}
	return pharmacy, nil
}

// load reads a pharmacy straight from the store.
func (s *pharmacyService) load(ctx context.Context, id, failure string) (*model.Pharmacy, error) {
	pharmacy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Pharmacy not found")
		}
		s.log.Error("load pharmacy failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(err, failure)
	}
	return pharmacy, nil
}

func (s *pharmacyService) Update(ctx context.Context, id string, input model.UpdatePharmacyInput) (*model.MessageResponse, error) {
	if id == "" {
		return nil, apperrors.BadRequest("Pharmacy ID is required")
	}
	if _, err := s.load(ctx, id, "Failed to update pharmacy"); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, input.Changes()); err != nil {
		s.log.Error("update pharmacy failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to update pharmacy")
	}
	s.invalidate(ctx, id)

	return &model.MessageResponse{Message: fmt.Sprintf("Pharmacy with ID %s updated successfully", id)}, nil
}

func (s *pharmacyService) Remove(ctx context.Context, id string) (*model.MessageResponse, error) {
	if id == "" {
		return nil, apperrors.BadRequest("Pharmacy ID is required")
	}
	if _, err := s.load(ctx, id, "Failed to delete pharmacy"); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete pharmacy failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to delete pharmacy")
	}
	s.invalidate(ctx, id)

	return &model.MessageResponse{Message: fmt.Sprintf("Pharmacy with ID %s deleted successfully", id)}, nil
}

// UpdateStatus flips open/close. The current status is always read from the store.
func (s *pharmacyService) UpdateStatus(ctx context.Context, id string) (*model.MessageResponse, error) {
	if id == "" {
		return nil, apperrors.BadRequest("Pharmacy ID is required")
	}
	pharmacy, err := s.load(ctx, id, "Failed to update pharmacy status")
	if err != nil {
		return nil, err
	}

	next := pharmacy.Status.Toggle()
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		s.log.Error("update pharmacy status failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to update pharmacy status")
	}
	s.invalidate(ctx, id)

	return &model.MessageResponse{Message: fmt.Sprintf("Pharmacy status updated to %s", next)}, nil
}
