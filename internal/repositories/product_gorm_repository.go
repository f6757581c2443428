package repositories

import (
	"fmt"
	"strings"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// orderedImages preloads the Images association ordered by insertion.
func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.id")
}

// Create inserts a new product together with its image rows.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return err
	}
	return nil
}

// Save updates the product row only; the Images association is never
// written here. Image replacement goes through ProductTx.
func (r *GORMProductRepository) Save(product *models.Product) error {
	if err := r.db.Omit(clause.Associations).Save(product).Error; err != nil {
		return err
	}
	return nil
}

// Find retrieves a page of products with their images preloaded in order.
func (r *GORMProductRepository) Find(limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Images", orderedImages).
		Order("products.created_at").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID with images preloaded.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Images", orderedImages).First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// FindByTerm retrieves a product by case-insensitive title or exact slug.
func (r *GORMProductRepository) FindByTerm(term string) (*models.Product, error) {
	var product models.Product
	lowered := strings.ToLower(term)
	err := r.db.Preload("Images", orderedImages).
		Where("LOWER(title) = ? OR slug = ?", lowered, lowered).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with term %s: %w", term, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by term %s: %w", term, err)
	}
	return &product, nil
}

// Remove deletes a product and its owned image rows.
func (r *GORMProductRepository) Remove(product *models.Product) error {
	res := r.db.Select(clause.Associations).Delete(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// RemoveAll wipes every product and image row. Test/seed reset only.
func (r *GORMProductRepository) RemoveAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return nil
	})
}

// BeginTx opens a transaction-scoped writer for multi-step updates.
func (r *GORMProductRepository) BeginTx() (ProductTx, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &gormProductTx{tx: tx}, nil
}

// gormProductTx implements ProductTx over a GORM transaction handle.
type gormProductTx struct {
	tx *gorm.DB
}

// DeleteImagesByProduct removes every image row owned by the product.
func (t *gormProductTx) DeleteImagesByProduct(productID string) error {
	return t.tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error
}

// Save writes the parent row, then inserts the attached image rows.
func (t *gormProductTx) Save(product *models.Product) error {
	if err := t.tx.Omit(clause.Associations).Save(product).Error; err != nil {
		return err
	}
	for i := range product.Images {
		product.Images[i].ID = 0
		product.Images[i].ProductID = product.ID
	}
	if len(product.Images) > 0 {
		if err := t.tx.Create(&product.Images).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *gormProductTx) Commit() error {
	return t.tx.Commit().Error
}

func (t *gormProductTx) Rollback() error {
	return t.tx.Rollback().Error
}
