package handlers

import (
	applog "pawmart/internal/log"
	"pawmart/internal/repos"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Auth  *services.AuthService
}

type placeOrderInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// POST /api/v1/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var in placeOrderInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	email, okEmail := validate.Email(in.Email)
	if !okEmail {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return fail(c, fiber.StatusBadRequest, "invalid email")
	}
	name, okName := validate.Name(in.Name)
	if !okName {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return fail(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}

	orderID, total, err := h.Order.Place(sid, services.Contact{Name: name, Email: email, Address: in.Address})
	if err != nil {
		// business rule errors (e.g., insufficient stock) surface as 400
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return fail(c, fiber.StatusBadRequest, "could not place order: "+err.Error())
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "total": total})

	return ok(c, fiber.StatusCreated, fiber.Map{"orderId": orderID, "total": total})
}

// GET /api/v1/orders/:id — session owner or admin only.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}

	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "order not found")
	}

	sid := c.Cookies("sid")
	var admin bool
	if h.Auth != nil && sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil {
			admin = u.IsAdmin()
		}
	}
	if sid == "" || sid != o.SessionID {
		if !admin {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
			return fail(c, fiber.StatusNotFound, "order not found")
		}
	}

	return ok(c, fiber.StatusOK, fiber.Map{"order": o, "items": items})
}

// GET /api/v1/orders — orders for the current session.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.Repo.ListBySession(sid)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return failErr(c, "could not load orders", err)
	}
	if orders == nil {
		orders = []repos.OrderSummary{}
	}
	return ok(c, fiber.StatusOK, orders)
}
