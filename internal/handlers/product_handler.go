package handlers

import (
	"log"

	"tienda/internal/dto"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	// Bulk catalog reset, intended for test/seed environments only.
	productRoutes.Delete("/",
		middleware.RoleRequired(models.RoleAdmin, models.RoleSuperUser),
		h.HandleDeleteAllProducts)
}

// HandleGetProducts returns a page of products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination query",
			"error":   err.Error(),
		})
	}

	products, err := h.service.FindAll(pagination)
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product by UUID, title, or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	term := c.Params("term")
	product, err := h.service.FindOnePlain(term)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product with its images.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var createDto dto.CreateProduct
	if err := c.BodyParser(&createDto); err != nil {
		log.Printf("Error parsing create product body: %v", err)
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

	product, err := h.service.Create(createDto)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update; when the body carries
// an images array the image set is replaced atomically.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var updateDto dto.UpdateProduct
	if err := c.BodyParser(&updateDto); err != nil {
		log.Printf("Error parsing update product body: %v", err)
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

	product, err := h.service.Update(id, updateDto)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes one product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Remove(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleDeleteAllProducts wipes the catalog.
func (h *ProductHandler) HandleDeleteAllProducts(c *fiber.Ctx) error {
	if err := h.service.DeleteAllProducts(); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "All products deleted",
	})
}
