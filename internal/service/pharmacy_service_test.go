package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pharmadir/internal/cache"
	apperrors "pharmadir/internal/errors"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
)

func newTestCache(t *testing.T) *cache.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewWithClient(rdb, zap.NewNop())
}

func validPharmacyInput() model.CreatePharmacyInput {
	return model.CreatePharmacyInput{
		Name:       "Test Pharmacy",
		Address:    "1 Main St",
		Latitude:   "36.8065",
		Longitude:  "10.1815",
		OpenHours:  "08:00",
		CloseHours: "20:00",
		Phone:      "+21612345678",
		Status:     model.PharmacyStatusClose,
	}
}

func TestPharmacyService_Create(t *testing.T) {
	t.Run("returns new id", func(t *testing.T) {
		repo := new(MockPharmacyRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Pharmacy) bool {
			return p.Name == "Test Pharmacy" && p.Status == model.PharmacyStatusClose
		})).Return("ph-1", nil)

		svc := NewPharmacyService(repo, nil, zap.NewNop())
		resp, err := svc.Create(context.Background(), validPharmacyInput())

		require.NoError(t, err)
		assert.Equal(t, "Pharmacy created successfully", resp.Message)
		assert.Equal(t, "ph-1", resp.PharmacyID)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockPharmacyRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return("", errors.New("unavailable"))

		svc := NewPharmacyService(repo, nil, zap.NewNop())
		_, err := svc.Create(context.Background(), validPharmacyInput())

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
		assert.Equal(t, "Failed to create pharmacy", err.Error())
	})
}

func TestPharmacyService_EmptyIDFailsBeforeStorage(t *testing.T) {
	repo := new(MockPharmacyRepository)
	svc := NewPharmacyService(repo, nil, zap.NewNop())
	ctx := context.Background()

	calls := map[string]func() error{
		"FindOne": func() error { _, err := svc.FindOne(ctx, ""); return err },
		"Update":  func() error { _, err := svc.Update(ctx, "", model.UpdatePharmacyInput{}); return err },
		"Remove":  func() error { _, err := svc.Remove(ctx, ""); return err },
		"Status":  func() error { _, err := svc.UpdateStatus(ctx, ""); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
			assert.Equal(t, "Pharmacy ID is required", err.Error())
		})
	}

	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	assert.Empty(t, repo.Calls)
}

func TestPharmacyService_NotFound(t *testing.T) {
	repo := new(MockPharmacyRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
	svc := NewPharmacyService(repo, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.FindOne(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Pharmacy not found", err.Error())

	_, err = svc.Update(ctx, "missing", model.UpdatePharmacyInput{})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = svc.Remove(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = svc.UpdateStatus(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPharmacyService_UpdateAndRemoveMessages(t *testing.T) {
	repo := new(MockPharmacyRepository)
	repo.On("FindByID", mock.Anything, "ph-1").Return(&model.Pharmacy{ID: "ph-1"}, nil)
	repo.On("Update", mock.Anything, "ph-1", model.PharmacyChanges{model.FieldPhone: "+21699999999"}).Return(nil)
	repo.On("Delete", mock.Anything, "ph-1").Return(nil)
	svc := NewPharmacyService(repo, nil, zap.NewNop())

	phone := "+21699999999"
	resp, err := svc.Update(context.Background(), "ph-1", model.UpdatePharmacyInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy with ID ph-1 updated successfully", resp.Message)

	resp, err = svc.Remove(context.Background(), "ph-1")
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy with ID ph-1 deleted successfully", resp.Message)
	repo.AssertExpectations(t)
}

func TestPharmacyService_UpdateStatusToggles(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore().Store()
	svc := NewPharmacyService(store.Pharmacies, newTestCache(t), zap.NewNop())

	created, err := svc.Create(ctx, validPharmacyInput())
	require.NoError(t, err)
	id := created.PharmacyID

	// warm the cache so a stale entry would be visible
	_, err = svc.FindOne(ctx, id)
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy status updated to open", resp.Message)

	resp, err = svc.UpdateStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy status updated to close", resp.Message)

	got, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PharmacyStatusClose, got.Status)
}

func TestPharmacyService_FindOneUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPharmacyRepository)
	repo.On("FindByID", mock.Anything, "ph-1").Return(&model.Pharmacy{ID: "ph-1", Name: "Cached"}, nil).Once()
	svc := NewPharmacyService(repo, newTestCache(t), zap.NewNop())

	first, err := svc.FindOne(ctx, "ph-1")
	require.NoError(t, err)
	second, err := svc.FindOne(ctx, "ph-1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	repo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestPharmacyService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore().Store()
	svc := NewPharmacyService(store.Pharmacies, newTestCache(t), zap.NewNop())

	created, err := svc.Create(ctx, validPharmacyInput())
	require.NoError(t, err)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	name := "Renamed"
	_, err = svc.Update(ctx, created.PharmacyID, model.UpdatePharmacyInput{Name: &name})
	require.NoError(t, err)

	got, err := svc.FindOne(ctx, created.PharmacyID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	all, err = svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", all[0].Name)

	_, err = svc.Remove(ctx, created.PharmacyID)
	require.NoError(t, err)
	_, err = svc.FindOne(ctx, created.PharmacyID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestPharmacyService_FindAllFailure(t *testing.T) {
	repo := new(MockPharmacyRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("deadline exceeded"))
	svc := NewPharmacyService(repo, nil, zap.NewNop())

	_, err := svc.FindAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch pharmacies", err.Error())
}
