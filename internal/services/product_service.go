package services

import (
	"errors"
	"log"

	"tienda/internal/dto"
	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CatalogPublisher publishes catalog change events. Nil publishers are
// tolerated; publishing is best-effort and never fails the operation.
type CatalogPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events CatalogPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events CatalogPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// Create builds a product from the DTO plus zero or more image URLs and
// persists parent and children together. Duplicate slug/title surfaces
// as ConflictError.
func (s *ProductService) Create(createDto dto.CreateProduct) (*models.PlainProduct, error) {
	product := &models.Product{
		Title:       createDto.Title,
		Slug:        createDto.Slug,
		Description: createDto.Description,
		Price:       createDto.Price,
		Stock:       createDto.Stock,
	}
	if product.Slug == "" {
		product.Slug = slug.Make(product.Title)
	}
	for _, url := range createDto.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := s.repo.Create(product); err != nil {
		return nil, mapDBError(err)
	}

	s.publish("product.created", product)
	plain := product.Plain()
	return &plain, nil
}

// FindAll returns a page of products with images flattened to URLs.
func (s *ProductService) FindAll(pagination dto.Pagination) ([]models.PlainProduct, error) {
	limit, offset := pagination.Window()
	products, err := s.repo.Find(limit, offset)
	if err != nil {
		return nil, mapDBError(err)
	}

	plains := make([]models.PlainProduct, 0, len(products))
	for i := range products {
		plains = append(plains, products[i].Plain())
	}
	return plains, nil
}

// FindOne resolves a product by UUID when term parses as one, otherwise
// by case-insensitive title or exact slug.
func (s *ProductService) FindOne(term string) (*models.Product, error) {
	var (
		product *models.Product
		err     error
	)
	if uuid.Validate(term) == nil {
		product, err = s.repo.FindByID(term)
	} else {
		product, err = s.repo.FindByTerm(term)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "product", Term: term}
		}
		return nil, mapDBError(err)
	}
	return product, nil
}

// FindOnePlain is FindOne with images flattened to URL strings.
func (s *ProductService) FindOnePlain(term string) (*models.PlainProduct, error) {
	product, err := s.FindOne(term)
	if err != nil {
		return nil, err
	}
	plain := product.Plain()
	return &plain, nil
}

// Update loads the product by id and overlays the present DTO fields.
// When the Images field is present (even empty) the old image rows are
// deleted and the new ones inserted inside one transaction; when it is
// absent the images are left untouched.
func (s *ProductService) Update(id string, updateDto dto.UpdateProduct) (*models.PlainProduct, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "product", Term: id}
		}
		return nil, mapDBError(err)
	}

	if updateDto.Title != nil {
		product.Title = *updateDto.Title
	}
	if updateDto.Description != nil {
		product.Description = *updateDto.Description
	}
	if updateDto.Price != nil {
		product.Price = *updateDto.Price
	}
	if updateDto.Stock != nil {
		product.Stock = *updateDto.Stock
	}
	if updateDto.Slug != nil {
		product.Slug = *updateDto.Slug
	}

	if updateDto.Images != nil {
		if err := s.replaceImages(product, *updateDto.Images); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Save(product); err != nil {
			return nil, mapDBError(err)
		}
	}

	s.publish("product.updated", product)
	return s.FindOnePlain(id)
}

// replaceImages runs the transactional fan-out: delete all existing
// image rows for the product, save the parent with the new rows. Any
// failure rolls the whole unit back before the mapped error propagates.
func (s *ProductService) replaceImages(product *models.Product, urls []string) error {
	tx, err := s.repo.BeginTx()
	if err != nil {
		return mapDBError(err)
	}

	product.Images = make([]models.ProductImage, 0, len(urls))
	for _, url := range urls {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := tx.DeleteImagesByProduct(product.ID); err != nil {
		tx.Rollback()
		return mapDBError(err)
	}
	if err := tx.Save(product); err != nil {
		tx.Rollback()
		return mapDBError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapDBError(err)
	}
	return nil
}

// Remove resolves the product by term and deletes it with its images.
func (s *ProductService) Remove(id string) error {
	product, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Resource: "product", Term: id}
		}
		return mapDBError(err)
	}

	s.publish("product.removed", product)
	return nil
}

// DeleteAllProducts wipes the whole catalog. Test/seed reset only.
func (s *ProductService) DeleteAllProducts() error {
	if err := s.repo.RemoveAll(); err != nil {
		return mapDBError(err)
	}
	return nil
}

func (s *ProductService) publish(event string, product *models.Product) {
	if s.events == nil {
		log.Printf("catalog publisher not configured, skipping %s for product %s", event, product.ID)
		return
	}
	payload := map[string]interface{}{
		"productID": product.ID,
		"title":     product.Title,
		"slug":      product.Slug,
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s for product %s: %v", event, product.ID, err)
	}
}
