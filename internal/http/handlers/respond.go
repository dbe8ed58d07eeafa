package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pawmart/internal/services"
)

// JSON envelope helpers. Every response is either
// {success:true, data, pagination?} or {success:false, message, errors?}.

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func okPage(c *fiber.Ctx, data any, p services.Pagination) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "pagination": p})
}

func okMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func failErr(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false, "message": message, "error": err.Error(),
	})
}

func failFields(c *fiber.Ctx, message string, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false, "message": message, "errors": errs,
	})
}

// failService maps the service failure taxonomy onto status codes.
func failService(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if errors.Is(err, services.ErrNoFields) {
		return fail(c, fiber.StatusBadRequest, "nothing to update")
	}
	if ve, isVE := services.AsValidation(err); isVE {
		return failFields(c, "validation failed", ve.Errors)
	}
	return failErr(c, "internal error", err)
}
