package repository

import (
	"context"
	"errors"

	"pharmadir/internal/model"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// PharmacyRepository defines pharmacy persistence operations.
type PharmacyRepository interface {
	// Create stores p under a new store-assigned id and returns that id.
	Create(ctx context.Context, p *model.Pharmacy) (string, error)
	List(ctx context.Context) ([]model.Pharmacy, error)
	FindByID(ctx context.Context, id string) (*model.Pharmacy, error)
	// Update merges changes into the stored pharmacy and stamps updatedAt.
	Update(ctx context.Context, id string, changes model.PharmacyChanges) error
	UpdateStatus(ctx context.Context, id string, status model.PharmacyStatus) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines operations on the comments of a pharmacy.
type CommentRepository interface {
	Add(ctx context.Context, pharmacyID string, c *model.Comment) (string, error)
	ListByPharmacy(ctx context.Context, pharmacyID string) ([]model.Comment, error)
	FindByID(ctx context.Context, pharmacyID, commentID string) (*model.Comment, error)
	Delete(ctx context.Context, pharmacyID, commentID string) error
}

// ProfileRepository defines operations on user profile documents.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByID(ctx context.Context, uid string) (*model.Profile, error)
	// AddFavorite appends pharmacyID to the favorites list if it is not present.
	AddFavorite(ctx context.Context, uid, pharmacyID string) error
	// RemoveFavorite removes every occurrence of pharmacyID from the favorites list.
	RemoveFavorite(ctx context.Context, uid, pharmacyID string) error
}

// Store bundles the repositories of one storage driver.
type Store struct {
	Pharmacies PharmacyRepository
	Comments   CommentRepository
	Profiles   ProfileRepository
	close      func() error
}

// Close releases the driver's resources.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
