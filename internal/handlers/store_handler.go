package handlers

import (
	"log"

	"tienda/internal/dto"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for stores. Every route requires
// an authenticated user; the service scopes all access to the owner.
type StoreHandler struct {
	service  *services.StoreService
	validate *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(service *services.StoreService) *StoreHandler {
	return &StoreHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the store routes with the Fiber app.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleGetStores)
	storeRoutes.Get("/:term", h.HandleGetStore)
	storeRoutes.Post("/", h.HandleCreateStore)
	storeRoutes.Patch("/:id", h.HandleUpdateStore)
	storeRoutes.Delete("/:id", h.HandleDeleteStore)
}

// HandleGetStores returns a page of the caller's stores.
func (h *StoreHandler) HandleGetStores(c *fiber.Ctx) error {
	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination query",
			"error":   err.Error(),
		})
	}

	stores, err := h.service.FindAll(pagination, currentUser(c))
	if err != nil {
		log.Printf("Error getting stores: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(stores)
}

// HandleGetStore returns one of the caller's stores by UUID, name, or slug.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	term := c.Params("term")
	store, err := h.service.FindOne(term, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(store)
}

// HandleCreateStore creates a store owned by the caller.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	var createDto dto.CreateStore
	if err := c.BodyParser(&createDto); err != nil {
		log.Printf("Error parsing create store body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(createDto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	store, err := h.service.Create(createDto, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleUpdateStore applies a partial update to one of the caller's stores.
func (h *StoreHandler) HandleUpdateStore(c *fiber.Ctx) error {
	id := c.Params("id")

	var updateDto dto.UpdateStore
	if err := c.BodyParser(&updateDto); err != nil {
		log.Printf("Error parsing update store body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(updateDto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	store, err := h.service.Update(id, updateDto, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(store)
}

// HandleDeleteStore removes one of the caller's stores.
func (h *StoreHandler) HandleDeleteStore(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Remove(id, currentUser(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Store deleted successfully",
	})
}
