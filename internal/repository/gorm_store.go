package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmadir/internal/model"
)

// pharmacyColumns maps document field names to table columns.
var pharmacyColumns = map[model.PharmacyField]string{
	model.FieldName:       "name",
	model.FieldImage:      "image",
	model.FieldAddress:    "address",
	model.FieldLatitude:   "latitude",
	model.FieldLongitude:  "long_latitude",
	model.FieldOpenHours:  "open_hours",
	model.FieldCloseHours: "close_hours",
	model.FieldPhone:      "phone",
	model.FieldStatus:     "status",
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Pharmacy{}, &model.Comment{}, &model.Profile{})
}

// NewGormStore builds a Store backed by a relational database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Pharmacies: NewGormPharmacyRepository(db),
		Comments:   NewGormCommentRepository(db),
		Profiles:   NewGormProfileRepository(db),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormPharmacyRepository struct {
	db *gorm.DB
}

// NewGormPharmacyRepository creates a GORM-backed pharmacy repository.
func NewGormPharmacyRepository(db *gorm.DB) PharmacyRepository {
	return &gormPharmacyRepository{db: db}
}

func (r *gormPharmacyRepository) Create(ctx context.Context, p *model.Pharmacy) (string, error) {
	p.ID = uuid.New().String()
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *gormPharmacyRepository) List(ctx context.Context) ([]model.Pharmacy, error) {
	var pharmacies []model.Pharmacy
	if err := r.db.WithContext(ctx).Order("created_at").Find(&pharmacies).Error; err != nil {
		return nil, err
	}
	return pharmacies, nil
}

func (r *gormPharmacyRepository) FindByID(ctx context.Context, id string) (*model.Pharmacy, error) {
	var pharmacy model.Pharmacy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pharmacy).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &pharmacy, nil
}

func (r *gormPharmacyRepository) Update(ctx context.Context, id string, changes model.PharmacyChanges) error {
	columns := make(map[string]interface{}, len(changes)+1)
	for field, value := range changes {
		if column, ok := pharmacyColumns[field]; ok {
			columns[column] = value
		}
	}
	columns["updated_at"] = time.Now().UTC()

	return r.db.WithContext(ctx).Model(&model.Pharmacy{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *gormPharmacyRepository) UpdateStatus(ctx context.Context, id string, status model.PharmacyStatus) error {
	return r.db.WithContext(ctx).Model(&model.Pharmacy{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the pharmacy together with its comments.
func (r *gormPharmacyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pharmacy_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Pharmacy{}).Error
	})
}

type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a GORM-backed comment repository.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Add(ctx context.Context, pharmacyID string, c *model.Comment) (string, error) {
	c.ID = uuid.New().String()
	c.PharmacyID = pharmacyID
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *gormCommentRepository) ListByPharmacy(ctx context.Context, pharmacyID string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("created_at").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormCommentRepository) FindByID(ctx context.Context, pharmacyID, commentID string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, commentID).
		First(&comment).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &comment, nil
}

func (r *gormCommentRepository) Delete(ctx context.Context, pharmacyID, commentID string) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, commentID).
		Delete(&model.Comment{}).Error
}

type gormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a GORM-backed profile repository.
func NewGormProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{db: db}
}

func (r *gormProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormProfileRepository) FindByID(ctx context.Context, uid string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&profile).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &profile, nil
}

func (r *gormProfileRepository) AddFavorite(ctx context.Context, uid, pharmacyID string) error {
	return r.updateFavorites(ctx, uid, func(favorites []string) []string {
		for _, id := range favorites {
			if id == pharmacyID {
				return favorites
			}
		}
		return append(favorites, pharmacyID)
	})
}

func (r *gormProfileRepository) RemoveFavorite(ctx context.Context, uid, pharmacyID string) error {
	return r.updateFavorites(ctx, uid, func(favorites []string) []string {
		kept := make([]string, 0, len(favorites))
		for _, id := range favorites {
			if id != pharmacyID {
				kept = append(kept, id)
			}
		}
		return kept
	})
}

// updateFavorites rewrites the favorites column under a row lock.
func (r *gormProfileRepository) updateFavorites(ctx context.Context, uid string, fn func([]string) []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("uid = ?", uid).
			First(&profile).Error; err != nil {
			return translateGormError(err)
		}

		favorites := fn([]string(profile.Favorites))
		return tx.Model(&model.Profile{}).
			Where("uid = ?", uid).
			Update("favorites", datatypes.JSONSlice[string](favorites)).Error
	})
}
