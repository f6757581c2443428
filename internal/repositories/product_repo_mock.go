package repositories

import (
	"fmt"
	"strings"
	"sync"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository, used when no database is configured and in tests.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	nextImg  uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// hasDuplicate reports whether another product already uses the slug or title.
func (r *MockProductRepository) hasDuplicate(product *models.Product) bool {
	for id, p := range r.products {
		if id == product.ID {
			continue
		}
		if p.Slug == product.Slug || strings.EqualFold(p.Title, product.Title) {
			return true
		}
	}
	return false
}

func (r *MockProductRepository) numberImages(images []models.ProductImage, productID string) {
	for i := range images {
		r.nextImg++
		images[i].ID = r.nextImg
		images[i].ProductID = productID
	}
}

// Create adds a new product, enforcing the slug/title uniqueness the
// real database would.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if r.hasDuplicate(product) {
		return gorm.ErrDuplicatedKey
	}
	r.numberImages(product.Images, product.ID)
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Save overwrites the product row, leaving its stored images untouched.
func (r *MockProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	if r.hasDuplicate(product) {
		return gorm.ErrDuplicatedKey
	}
	updated := *product
	updated.Images = existing.Images
	r.products[product.ID] = updated
	return nil
}

// Find returns a page of products in insertion order.
func (r *MockProductRepository) Find(limit, offset int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, limit)
	for i := offset; i < len(r.order) && len(products) < limit; i++ {
		products = append(products, r.products[r.order[i]])
	}
	return products, nil
}

// FindByID returns a product by its ID.
func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// FindByTerm returns a product by case-insensitive title or exact slug.
func (r *MockProductRepository) FindByTerm(term string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(term)
	for _, id := range r.order {
		p := r.products[id]
		if strings.ToLower(p.Title) == lowered || p.Slug == lowered {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product with term %s: %w", term, ErrNotFound)
}

// Remove deletes a product and its images.
func (r *MockProductRepository) Remove(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	delete(r.products, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveAll wipes every product.
func (r *MockProductRepository) RemoveAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[string]models.Product)
	r.order = nil
	return nil
}

// BeginTx returns a staged writer whose operations apply on Commit and
// are discarded on Rollback, mirroring the database transaction.
func (r *MockProductRepository) BeginTx() (ProductTx, error) {
	return &mockProductTx{repo: r}, nil
}

type mockProductTx struct {
	repo *MockProductRepository
	ops  []func()
	done bool
}

func (t *mockProductTx) DeleteImagesByProduct(productID string) error {
	t.ops = append(t.ops, func() {
		if p, ok := t.repo.products[productID]; ok {
			p.Images = nil
			t.repo.products[productID] = p
		}
	})
	return nil
}

func (t *mockProductTx) Save(product *models.Product) error {
	staged := *product
	staged.Images = append([]models.ProductImage(nil), product.Images...)
	t.ops = append(t.ops, func() {
		t.repo.numberImages(staged.Images, staged.ID)
		if _, ok := t.repo.products[staged.ID]; !ok {
			t.repo.order = append(t.repo.order, staged.ID)
		}
		t.repo.products[staged.ID] = staged
	})
	return nil
}

func (t *mockProductTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.done = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, op := range t.ops {
		op()
	}
	return nil
}

func (t *mockProductTx) Rollback() error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.done = true
	t.ops = nil
	return nil
}
