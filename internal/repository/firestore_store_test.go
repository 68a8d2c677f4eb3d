package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmadir/internal/model"
)

// newEmulatorStore connects to the Firestore emulator. Tests are skipped when
// FIRESTORE_EMULATOR_HOST is not set.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), fmt.Sprintf("pharmadir-test-%d", time.Now().UnixNano()))
	require.NoError(t, err)
	store := NewFirestoreStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFirestoreStore_PharmacyAndComments(t *testing.T) {
	ctx := context.Background()
	store := newEmulatorStore(t)

	id, err := store.Pharmacies.Create(ctx, &model.Pharmacy{Name: "Test Pharmacy", Status: model.PharmacyStatusClose})
	require.NoError(t, err)

	got, err := store.Pharmacies.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Test Pharmacy", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, store.Pharmacies.UpdateStatus(ctx, id, model.PharmacyStatusOpen))
	got, err = store.Pharmacies.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PharmacyStatusOpen, got.Status)

	commentID, err := store.Comments.Add(ctx, id, &model.Comment{UserID: "uid-1", Comment: "Great", Stars: 4, CreatedAt: time.Now()})
	require.NoError(t, err)
	comment, err := store.Comments.FindByID(ctx, id, commentID)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", comment.UserID)

	_, err = store.Pharmacies.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Pharmacies.Update(ctx, "missing", model.PharmacyChanges{model.FieldName: "x"}), ErrNotFound)
}

func TestFirestoreStore_ConcurrentFavoriteAdds(t *testing.T) {
	ctx := context.Background()
	store := newEmulatorStore(t)
	require.NoError(t, store.Profiles.Create(ctx, &model.Profile{UID: "uid-1", Role: model.RoleUser}))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Profiles.AddFavorite(ctx, "uid-1", fmt.Sprintf("ph-%d", i)))
		}(i)
	}
	wg.Wait()

	profile, err := store.Profiles.FindByID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Len(t, profile.Favorites, 5)
}
