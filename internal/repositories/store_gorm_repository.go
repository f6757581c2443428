package repositories

import (
	"fmt"
	"strings"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create inserts a new store.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return err
	}
	return nil
}

// Save updates an existing store.
func (r *GORMStoreRepository) Save(store *models.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		return err
	}
	return nil
}

// Find retrieves a page of the given user's stores.
func (r *GORMStoreRepository) Find(limit, offset int, userID string) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Where("user_id = ?", userID).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores for user %s: %w", userID, err)
	}
	return stores, nil
}

// FindByID retrieves a store by its ID regardless of owner.
func (r *GORMStoreRepository) FindByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// FindByIDAndOwner retrieves a store by ID scoped to its owner. A store
// owned by someone else is indistinguishable from a missing one.
func (r *GORMStoreRepository) FindByIDAndOwner(id, userID string) (*models.Store, error) {
	var store models.Store
	err := r.db.First(&store, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// FindByTerm retrieves a store by case-insensitive name or exact slug,
// scoped to its owner.
func (r *GORMStoreRepository) FindByTerm(term, userID string) (*models.Store, error) {
	var store models.Store
	lowered := strings.ToLower(term)
	err := r.db.Where("(LOWER(name) = ? OR slug = ?) AND user_id = ?", lowered, lowered, userID).
		First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with term %s: %w", term, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by term %s: %w", term, err)
	}
	return &store, nil
}

// Remove deletes a store.
func (r *GORMStoreRepository) Remove(store *models.Store) error {
	res := r.db.Delete(store)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s: %w", store.ID, ErrNotFound)
	}
	return nil
}
