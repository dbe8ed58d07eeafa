package handlers

import (
	"strconv"

	applog "pawmart/internal/log"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReservationHandler struct {
	Resv *services.ReservationService
}

// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in services.ReservationInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if _, okEmail := validate.Email(in.Email); !okEmail {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return fail(c, fiber.StatusBadRequest, "invalid email")
	}
	rec, err := h.Resv.Create(in)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "reservations.create", map[string]any{"reservation_id": rec.ID})
	return ok(c, fiber.StatusCreated, rec)
}

// GET /api/v1/admin/reservations
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	rows, err := h.Resv.List(status, page, limit)
	if err != nil {
		applog.Error(c, "admin.reservations.list.fail", err, nil)
		return failErr(c, "could not load reservations", err)
	}
	return ok(c, fiber.StatusOK, rows)
}

// GET /api/v1/admin/reservations/:id
func (h *ReservationHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	rec, err := h.Resv.Get(id)
	if err != nil {
		return failService(c, err)
	}
	return ok(c, fiber.StatusOK, rec)
}

// PUT /api/v1/admin/reservations/:id
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	var upd services.ReservationUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	rec, err := h.Resv.Update(id, upd)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.reservations.update", map[string]any{
		"reservation_id": id, "status": rec.Status,
	})
	return ok(c, fiber.StatusOK, rec)
}

// DELETE /api/v1/admin/reservations/:id
func (h *ReservationHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Resv.Delete(id); err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.reservations.delete", map[string]any{"reservation_id": id})
	return okMessage(c, "reservation deleted")
}
