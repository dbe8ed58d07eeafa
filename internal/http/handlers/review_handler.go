package handlers

import (
	applog "pawmart/internal/log"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	rows, err := h.Reviews.List(id)
	if err != nil {
		return failService(c, err)
	}
	return ok(c, fiber.StatusOK, rows)
}

// POST /api/v1/products/:id/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	rev, err := h.Reviews.Add(id, in)
	if err != nil {
		return failService(c, err)
	}
	applog.Info(c, "reviews.create", map[string]any{"product_id": id})
	return ok(c, fiber.StatusCreated, rev)
}

// DELETE /api/v1/admin/reviews/:id
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Reviews.Delete(id); err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.reviews.delete", map[string]any{"review_id": id})
	return okMessage(c, "review deleted")
}
