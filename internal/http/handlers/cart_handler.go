package handlers

import (
	"errors"

	applog "pawmart/internal/log"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartItemInput struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return failErr(c, "could not load cart", err)
	}
	return ok(c, fiber.StatusOK, cv)
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in cartItemInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	id, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	if in.Qty < 1 {
		in.Qty = 1
	}
	if err := h.Cart.Add(ensureSID(c), id, in.Qty); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "product not found")
		}
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return okMessage(c, "added to cart")
}

// PUT /api/v1/cart/items/:productId
func (h *CartHandler) SetQty(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("productId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	var in struct {
		Qty int `json:"qty"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.Cart.SetQty(ensureSID(c), id, in.Qty); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "product not found")
		}
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return okMessage(c, "cart updated")
}

// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("productId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	if err := h.Cart.Remove(ensureSID(c), id); err != nil {
		applog.Error(c, "cart.remove.fail", err, nil)
		return failErr(c, "could not update cart", err)
	}
	return okMessage(c, "removed from cart")
}
