package services

import (
	"errors"

	"tienda/internal/dto"
	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// StoreService handles business logic related to stores. Every lookup
// is scoped to the owning user; a store owned by someone else is
// invisible, not forbidden. The one exception is Update, which reveals
// existence and denies the mutation with UnauthorizedError.
type StoreService struct {
	repo repositories.StoreRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(repo repositories.StoreRepository) *StoreService {
	return &StoreService{
		repo: repo,
	}
}

// Create builds a store owned by the caller and persists it.
func (s *StoreService) Create(createDto dto.CreateStore, user *models.User) (*models.Store, error) {
	store := &models.Store{
		Name:        createDto.Name,
		Description: createDto.Description,
		Slug:        createDto.Slug,
		UserID:      user.ID,
		CreatedByID: user.ID,
	}
	if store.Slug == "" {
		store.Slug = slug.Make(store.Name)
	}

	if err := s.repo.Create(store); err != nil {
		return nil, mapDBError(err)
	}
	return store, nil
}

// FindAll returns a page of the caller's stores.
func (s *StoreService) FindAll(pagination dto.Pagination, user *models.User) ([]models.Store, error) {
	limit, offset := pagination.Window()
	stores, err := s.repo.Find(limit, offset, user.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return stores, nil
}

// FindOne resolves a store by UUID or by case-insensitive name / exact
// slug, always filtered to the caller's ownership.
func (s *StoreService) FindOne(term string, user *models.User) (*models.Store, error) {
	var (
		store *models.Store
		err   error
	)
	if uuid.Validate(term) == nil {
		store, err = s.repo.FindByIDAndOwner(term, user.ID)
	} else {
		store, err = s.repo.FindByTerm(term, user.ID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "store", Term: term}
		}
		return nil, mapDBError(err)
	}
	return store, nil
}

// Update loads the store by id without the owner filter, denies the
// mutation when the caller is not the owner, then overlays the present
// DTO fields and persists.
func (s *StoreService) Update(id string, updateDto dto.UpdateStore, user *models.User) (*models.Store, error) {
	store, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "store", Term: id}
		}
		return nil, mapDBError(err)
	}

	if store.UserID != user.ID {
		return nil, &UnauthorizedError{Msg: "you are not allowed to update this store"}
	}

	if updateDto.Name != nil {
		store.Name = *updateDto.Name
	}
	if updateDto.Description != nil {
		store.Description = *updateDto.Description
	}
	if updateDto.Slug != nil {
		store.Slug = *updateDto.Slug
	}

	if err := s.repo.Save(store); err != nil {
		return nil, mapDBError(err)
	}
	return store, nil
}

// Remove resolves via the owner-scoped lookup, so deleting another
// user's store surfaces as NotFound rather than Unauthorized.
func (s *StoreService) Remove(id string, user *models.User) error {
	store, err := s.FindOne(id, user)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(store); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Resource: "store", Term: id}
		}
		return mapDBError(err)
	}
	return nil
}
