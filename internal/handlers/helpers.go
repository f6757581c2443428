package handlers

import (
	"errors"
	"fmt"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationMessages flattens validator errors into a field→message map.
func validationMessages(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// respondServiceError maps domain error kinds to HTTP statuses. Internal
// errors carry only the generic message; the detail was already logged.
func respondServiceError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Duplicate key violation",
			"error":   conflict.Detail,
		})
	}

	var unauthorized *services.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": unauthorized.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// currentUser rebuilds the authenticated user reference stored in the
// request locals by the JWT middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user := &models.User{}
	if id, ok := c.Locals("user_id").(string); ok {
		user.ID = id
	}
	if username, ok := c.Locals("username").(string); ok {
		user.Username = username
	}
	if roles, ok := c.Locals("roles").([]string); ok {
		user.Roles = roles
	}
	return user
}
