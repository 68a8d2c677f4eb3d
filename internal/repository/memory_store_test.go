package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmadir/internal/model"
)

func TestMemoryStore_PharmacyLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()

	id, err := store.Pharmacies.Create(ctx, &model.Pharmacy{Name: "Test Pharmacy", Status: model.PharmacyStatusClose})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Pharmacies.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Test Pharmacy", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.UpdatedAt)

	name := "Renamed"
	require.NoError(t, store.Pharmacies.Update(ctx, id, model.UpdatePharmacyInput{Name: &name}.Changes()))
	require.NoError(t, store.Pharmacies.UpdateStatus(ctx, id, model.PharmacyStatusOpen))

	got, err = store.Pharmacies.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, model.PharmacyStatusOpen, got.Status)
	assert.NotNil(t, got.UpdatedAt)

	list, err := store.Pharmacies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.Pharmacies.Delete(ctx, id))
	_, err = store.Pharmacies.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Pharmacies.Update(ctx, id, model.PharmacyChanges{}), ErrNotFound)
}

func TestMemoryStore_Comments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()

	first, err := store.Comments.Add(ctx, "ph-1", &model.Comment{UserID: "u1", Comment: "Great", Stars: 5})
	require.NoError(t, err)
	_, err = store.Comments.Add(ctx, "ph-1", &model.Comment{UserID: "u2", Comment: "Ok", Stars: 3})
	require.NoError(t, err)

	comments, err := store.Comments.ListByPharmacy(ctx, "ph-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first, comments[0].ID)

	found, err := store.Comments.FindByID(ctx, "ph-1", first)
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	_, err = store.Comments.FindByID(ctx, "ph-2", first)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Comments.Delete(ctx, "ph-1", first))
	comments, err = store.Comments.ListByPharmacy(ctx, "ph-1")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestMemoryStore_Favorites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()
	require.NoError(t, store.Profiles.Create(ctx, &model.Profile{UID: "u1", Role: model.RoleUser}))

	require.NoError(t, store.Profiles.AddFavorite(ctx, "u1", "a"))
	require.NoError(t, store.Profiles.AddFavorite(ctx, "u1", "b"))
	require.NoError(t, store.Profiles.AddFavorite(ctx, "u1", "a"))

	profile, err := store.Profiles.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string(profile.Favorites))

	require.NoError(t, store.Profiles.RemoveFavorite(ctx, "u1", "a"))
	require.NoError(t, store.Profiles.RemoveFavorite(ctx, "u1", "missing"))
	profile, err = store.Profiles.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, []string(profile.Favorites))

	assert.ErrorIs(t, store.Profiles.AddFavorite(ctx, "nobody", "a"), ErrNotFound)
}

func TestMemoryStore_ConcurrentFavoriteAdds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()
	require.NoError(t, store.Profiles.Create(ctx, &model.Profile{UID: "u1"}))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Profiles.AddFavorite(ctx, "u1", fmt.Sprintf("ph-%d", i)))
		}(i)
	}
	wg.Wait()

	profile, err := store.Profiles.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, profile.Favorites, writers)
}
