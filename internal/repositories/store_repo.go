package repositories

import "tienda/internal/models"

// StoreRepository defines the interface for store data access.
// Lookups are owner-scoped except FindByID, which the update flow uses
// to distinguish "does not exist" from "exists but not yours".
type StoreRepository interface {
	Create(store *models.Store) error
	Save(store *models.Store) error
	Find(limit, offset int, userID string) ([]models.Store, error)
	FindByID(id string) (*models.Store, error)
	FindByIDAndOwner(id, userID string) (*models.Store, error)
	FindByTerm(term, userID string) (*models.Store, error)
	Remove(store *models.Store) error
}
