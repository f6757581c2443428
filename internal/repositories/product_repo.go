package repositories

import (
	"errors"

	"tienda/internal/models"
)

// ErrNotFound is returned by all repositories when a record does not
// resolve. Services translate it into their NotFound error kind.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	Save(product *models.Product) error
	Find(limit, offset int) ([]models.Product, error)
	FindByID(id string) (*models.Product, error)
	FindByTerm(term string) (*models.Product, error)
	Remove(product *models.Product) error
	RemoveAll() error
	BeginTx() (ProductTx, error)
}

// ProductTx is a transaction-scoped writer for the multi-step image
// replacement. All writes issued through it either commit together or
// roll back together; the underlying connection is released by whichever
// of Commit or Rollback is called.
type ProductTx interface {
	DeleteImagesByProduct(productID string) error
	Save(product *models.Product) error
	Commit() error
	Rollback() error
}
