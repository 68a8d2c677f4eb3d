package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pharmadir/internal/model"
)

// MemoryStore keeps every collection in-process. It backs local development
// and tests; writes are serialized by a single mutex.
type MemoryStore struct {
	mu         sync.RWMutex
	pharmacies map[string]model.Pharmacy
	order      []string
	comments   map[string][]model.Comment // key: pharmacy ID
	profiles   map[string]model.Profile   // key: UID
	now        func() time.Time
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pharmacies: make(map[string]model.Pharmacy),
		comments:   make(map[string][]model.Comment),
		profiles:   make(map[string]model.Profile),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Store exposes the memory store through the repository interfaces.
func (m *MemoryStore) Store() *Store {
	return &Store{
		Pharmacies: memoryPharmacies{m},
		Comments:   memoryComments{m},
		Profiles:   memoryProfiles{m},
	}
}

type memoryPharmacies struct{ m *MemoryStore }

func (r memoryPharmacies) Create(_ context.Context, p *model.Pharmacy) (string, error) {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New().String()
	p.CreatedAt = m.now()
	m.pharmacies[p.ID] = *p
	m.order = append(m.order, p.ID)
	return p.ID, nil
}

func (r memoryPharmacies) List(_ context.Context) ([]model.Pharmacy, error) {
	m := r.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Pharmacy, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.pharmacies[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r memoryPharmacies) FindByID(_ context.Context, id string) (*model.Pharmacy, error) {
	m := r.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pharmacies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r memoryPharmacies) Update(_ context.Context, id string, changes model.PharmacyChanges) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pharmacies[id]
	if !ok {
		return ErrNotFound
	}
	changes.Apply(&p)
	now := m.now()
	p.UpdatedAt = &now
	m.pharmacies[id] = p
	return nil
}

func (r memoryPharmacies) UpdateStatus(_ context.Context, id string, status model.PharmacyStatus) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pharmacies[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	m.pharmacies[id] = p
	return nil
}

func (r memoryPharmacies) Delete(_ context.Context, id string) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pharmacies, id)
	delete(m.comments, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type memoryComments struct{ m *MemoryStore }

func (r memoryComments) Add(_ context.Context, pharmacyID string, c *model.Comment) (string, error) {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New().String()
	c.PharmacyID = pharmacyID
	m.comments[pharmacyID] = append(m.comments[pharmacyID], *c)
	return c.ID, nil
}

func (r memoryComments) ListByPharmacy(_ context.Context, pharmacyID string) ([]model.Comment, error) {
	m := r.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Comment, len(m.comments[pharmacyID]))
	copy(res, m.comments[pharmacyID])
	return res, nil
}

func (r memoryComments) FindByID(_ context.Context, pharmacyID, commentID string) (*model.Comment, error) {
	m := r.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.comments[pharmacyID] {
		if c.ID == commentID {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryComments) Delete(_ context.Context, pharmacyID, commentID string) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := m.comments[pharmacyID]
	for i, c := range comments {
		if c.ID == commentID {
			m.comments[pharmacyID] = append(comments[:i], comments[i+1:]...)
			break
		}
	}
	return nil
}

type memoryProfiles struct{ m *MemoryStore }

func (r memoryProfiles) Create(_ context.Context, p *model.Profile) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *p
	if stored.Favorites == nil {
		stored.Favorites = []string{}
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now()
	}
	m.profiles[p.UID] = stored
	return nil
}

func (r memoryProfiles) FindByID(_ context.Context, uid string) (*model.Profile, error) {
	m := r.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	p.Favorites = append([]string{}, p.Favorites...)
	return &p, nil
}

func (r memoryProfiles) AddFavorite(_ context.Context, uid, pharmacyID string) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return ErrNotFound
	}
	if p.HasFavorite(pharmacyID) {
		return nil
	}
	favorites := make([]string, 0, len(p.Favorites)+1)
	favorites = append(favorites, p.Favorites...)
	p.Favorites = append(favorites, pharmacyID)
	m.profiles[uid] = p
	return nil
}

func (r memoryProfiles) RemoveFavorite(_ context.Context, uid, pharmacyID string) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return ErrNotFound
	}
	kept := make([]string, 0, len(p.Favorites))
	for _, id := range p.Favorites {
		if id != pharmacyID {
			kept = append(kept, id)
		}
	}
	p.Favorites = kept
	m.profiles[uid] = p
	return nil
}
