package handlers

import (
	"errors"

	applog "pawmart/internal/log"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/v1/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	rows, err := h.Wish.List(ensureSID(c))
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return failErr(c, "could not load wishlist", err)
	}
	return ok(c, fiber.StatusOK, rows)
}

// POST /api/v1/wishlist
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	id, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	if err := h.Wish.Save(ensureSID(c), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "wishlist.save.fail", err, nil)
		return failErr(c, "could not save to wishlist", err)
	}
	return okMessage(c, "saved to wishlist")
}

// DELETE /api/v1/wishlist/:productId
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("productId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	if err := h.Wish.Unsave(ensureSID(c), id); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, nil)
		return failErr(c, "could not update wishlist", err)
	}
	return okMessage(c, "removed from wishlist")
}
