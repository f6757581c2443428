package repositories

import (
	"fmt"
	"strings"
	"sync"

	"tienda/internal/models"

	"github.com/google/uuid"
)

// MockStoreRepository is an in-memory implementation of StoreRepository.
type MockStoreRepository struct {
	stores map[string]models.Store
	order  []string
	mu     sync.RWMutex
}

// NewMockStoreRepository creates a new instance of MockStoreRepository.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{
		stores: make(map[string]models.Store),
	}
}

// Create adds a new store.
func (r *MockStoreRepository) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	r.stores[store.ID] = *store
	r.order = append(r.order, store.ID)
	return nil
}

// Save overwrites an existing store.
func (r *MockStoreRepository) Save(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[store.ID]; !ok {
		return fmt.Errorf("store with ID %s: %w", store.ID, ErrNotFound)
	}
	r.stores[store.ID] = *store
	return nil
}

// Find returns a page of the given user's stores in insertion order.
func (r *MockStoreRepository) Find(limit, offset int, userID string) ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.Store, 0)
	for _, id := range r.order {
		if s := r.stores[id]; s.UserID == userID {
			owned = append(owned, s)
		}
	}
	if offset >= len(owned) {
		return []models.Store{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// FindByID returns a store by its ID regardless of owner.
func (r *MockStoreRepository) FindByID(id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
	}
	return &store, nil
}

// FindByIDAndOwner returns a store by ID scoped to its owner.
func (r *MockStoreRepository) FindByIDAndOwner(id, userID string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok || store.UserID != userID {
		return nil, fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
	}
	return &store, nil
}

// FindByTerm returns a store by case-insensitive name or exact slug,
// scoped to its owner.
func (r *MockStoreRepository) FindByTerm(term, userID string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(term)
	for _, id := range r.order {
		s := r.stores[id]
		if s.UserID != userID {
			continue
		}
		if strings.ToLower(s.Name) == lowered || s.Slug == lowered {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("store with term %s: %w", term, ErrNotFound)
}

// Remove deletes a store.
func (r *MockStoreRepository) Remove(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[store.ID]; !ok {
		return fmt.Errorf("store with ID %s: %w", store.ID, ErrNotFound)
	}
	delete(r.stores, store.ID)
	for i, id := range r.order {
		if id == store.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
