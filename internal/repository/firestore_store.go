package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pharmadir/internal/model"
)

const (
	pharmaciesCollection = "pharmacies"
	commentsCollection   = "comments"
	usersCollection      = "users"
)

// NewFirestoreStore builds a Store backed by Cloud Firestore. Comments live in
// the "comments" sub-collection of their pharmacy document.
func NewFirestoreStore(client *firestore.Client) *Store {
	return &Store{
		Pharmacies: NewFirestorePharmacyRepository(client),
		Comments:   NewFirestoreCommentRepository(client),
		Profiles:   NewFirestoreProfileRepository(client),
		close:      client.Close,
	}
}

func translateFirestoreError(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

type firestorePharmacyRepository struct {
	client *firestore.Client
}

// NewFirestorePharmacyRepository creates a Firestore-backed pharmacy repository.
func NewFirestorePharmacyRepository(client *firestore.Client) PharmacyRepository {
	return &firestorePharmacyRepository{client: client}
}

func (r *firestorePharmacyRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(pharmaciesCollection).Doc(id)
}

func (r *firestorePharmacyRepository) Create(ctx context.Context, p *model.Pharmacy) (string, error) {
	ref := r.client.Collection(pharmaciesCollection).NewDoc()
	// a zero CreatedAt is replaced by the server timestamp
	p.CreatedAt = time.Time{}
	if _, err := ref.Set(ctx, p); err != nil {
		return "", err
	}
	p.ID = ref.ID
	return ref.ID, nil
}

func (r *firestorePharmacyRepository) List(ctx context.Context) ([]model.Pharmacy, error) {
	snaps, err := r.client.Collection(pharmaciesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	pharmacies := make([]model.Pharmacy, 0, len(snaps))
	for _, snap := range snaps {
		var p model.Pharmacy
		if err := snap.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = snap.Ref.ID
		pharmacies = append(pharmacies, p)
	}
	return pharmacies, nil
}

func (r *firestorePharmacyRepository) FindByID(ctx context.Context, id string) (*model.Pharmacy, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		return nil, translateFirestoreError(err)
	}
	var p model.Pharmacy
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

func (r *firestorePharmacyRepository) Update(ctx context.Context, id string, changes model.PharmacyChanges) error {
	updates := make([]firestore.Update, 0, len(changes)+1)
	for field, value := range changes {
		updates = append(updates, firestore.Update{Path: string(field), Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	_, err := r.doc(id).Update(ctx, updates)
	return translateFirestoreError(err)
}

func (r *firestorePharmacyRepository) UpdateStatus(ctx context.Context, id string, s model.PharmacyStatus) error {
	_, err := r.doc(id).Update(ctx, []firestore.Update{
		{Path: string(model.FieldStatus), Value: string(s)},
	})
	return translateFirestoreError(err)
}

// Delete removes the pharmacy document. Firestore keeps sub-collections of a
// deleted document, so its comments stay addressable by path.
func (r *firestorePharmacyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.doc(id).Delete(ctx)
	return err
}

type firestoreCommentRepository struct {
	client *firestore.Client
}

// NewFirestoreCommentRepository creates a Firestore-backed comment repository.
func NewFirestoreCommentRepository(client *firestore.Client) CommentRepository {
	return &firestoreCommentRepository{client: client}
}

func (r *firestoreCommentRepository) collection(pharmacyID string) *firestore.CollectionRef {
	return r.client.Collection(pharmaciesCollection).Doc(pharmacyID).Collection(commentsCollection)
}

func (r *firestoreCommentRepository) Add(ctx context.Context, pharmacyID string, c *model.Comment) (string, error) {
	ref, _, err := r.collection(pharmacyID).Add(ctx, c)
	if err != nil {
		return "", err
	}
	c.ID = ref.ID
	c.PharmacyID = pharmacyID
	return ref.ID, nil
}

func (r *firestoreCommentRepository) ListByPharmacy(ctx context.Context, pharmacyID string) ([]model.Comment, error) {
	snaps, err := r.collection(pharmacyID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0, len(snaps))
	for _, snap := range snaps {
		var c model.Comment
		if err := snap.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = snap.Ref.ID
		c.PharmacyID = pharmacyID
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *firestoreCommentRepository) FindByID(ctx context.Context, pharmacyID, commentID string) (*model.Comment, error) {
	snap, err := r.collection(pharmacyID).Doc(commentID).Get(ctx)
	if err != nil {
		return nil, translateFirestoreError(err)
	}
	var c model.Comment
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	c.PharmacyID = pharmacyID
	return &c, nil
}

func (r *firestoreCommentRepository) Delete(ctx context.Context, pharmacyID, commentID string) error {
	_, err := r.collection(pharmacyID).Doc(commentID).Delete(ctx)
	return err
}

type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a Firestore-backed profile repository.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	return &firestoreProfileRepository{client: client}
}

func (r *firestoreProfileRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

func (r *firestoreProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	_, err := r.doc(p.UID).Set(ctx, p)
	return err
}

func (r *firestoreProfileRepository) FindByID(ctx context.Context, uid string) (*model.Profile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		return nil, translateFirestoreError(err)
	}
	var p model.Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.UID = snap.Ref.ID
	return &p, nil
}

// AddFavorite uses an array union so concurrent adds do not overwrite each other.
func (r *firestoreProfileRepository) AddFavorite(ctx context.Context, uid, pharmacyID string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "favorites", Value: firestore.ArrayUnion(pharmacyID)},
	})
	return translateFirestoreError(err)
}

func (r *firestoreProfileRepository) RemoveFavorite(ctx context.Context, uid, pharmacyID string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "favorites", Value: firestore.ArrayRemove(pharmacyID)},
	})
	return translateFirestoreError(err)
}
