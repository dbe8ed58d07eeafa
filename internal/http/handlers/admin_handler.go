package handlers

import (
	"time"

	"pawmart/internal/domain"
	applog "pawmart/internal/log"
	"pawmart/internal/repos"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler covers the back-office surfaces that are thin enough to
// sit directly on repos: orders, gallery, team, dashboard counts.
type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Gallery   *repos.GalleryRepo
	Team      *repos.TeamRepo
	Pets      *repos.PetRepo
	Prods     *repos.ProductRepo
	Resv      *repos.ReservationRepo
}

// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	pets, err := h.Pets.CountAll()
	if err != nil {
		return failErr(c, "could not load dashboard", err)
	}
	prods, err := h.Prods.CountAll()
	if err != nil {
		return failErr(c, "could not load dashboard", err)
	}
	orders, err := h.OrderRepo.CountAll()
	if err != nil {
		return failErr(c, "could not load dashboard", err)
	}
	pending, err := h.Resv.CountByStatus(domain.ReservationPending)
	if err != nil {
		return failErr(c, "could not load dashboard", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"pets": pets, "products": prods, "orders": orders, "pendingReservations": pending,
	})
}

// GET /api/v1/admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return failErr(c, "could not load orders", err)
	}
	return ok(c, fiber.StatusOK, ords)
}

// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return fail(c, fiber.StatusBadRequest, "missing status")
	}
	if _, _, err := h.OrderRepo.Get(id); err != nil {
		return fail(c, fiber.StatusNotFound, "order not found")
	}
	if err := h.OrderRepo.UpdateStatus(id, in.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return failErr(c, "could not update status", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": in.Status})
	return okMessage(c, "order updated")
}

// ---------- Gallery ----------

type galleryInput struct {
	URL      string `json:"url"`
	Caption  string `json:"caption"`
	Position int    `json:"position"`
}

// GET /api/v1/gallery (public)
func (h *AdminHandler) GalleryList(c *fiber.Ctx) error {
	rows, err := h.Gallery.List()
	if err != nil {
		return failErr(c, "could not load gallery", err)
	}
	if rows == nil {
		rows = []domain.GalleryImage{}
	}
	return ok(c, fiber.StatusOK, rows)
}

// POST /api/v1/admin/gallery
func (h *AdminHandler) GalleryCreate(c *fiber.Ctx) error {
	var in galleryInput
	if err := c.BodyParser(&in); err != nil || in.URL == "" {
		return fail(c, fiber.StatusBadRequest, "url is required")
	}
	g := domain.GalleryImage{
		ID: uuid.NewString(), URL: in.URL, Caption: in.Caption, Position: in.Position,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Gallery.Insert(g); err != nil {
		return failErr(c, "could not save image", err)
	}
	applog.Audit(c, "admin.gallery.create", map[string]any{"image_id": g.ID})
	return ok(c, fiber.StatusCreated, g)
}

// PUT /api/v1/admin/gallery/:id
func (h *AdminHandler) GalleryUpdate(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	g, err := h.Gallery.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "image not found")
	}
	var in galleryInput
	if err := c.BodyParser(&in); err != nil || in.URL == "" {
		return fail(c, fiber.StatusBadRequest, "url is required")
	}
	g.URL, g.Caption, g.Position = in.URL, in.Caption, in.Position
	if err := h.Gallery.Update(g); err != nil {
		return failErr(c, "could not save image", err)
	}
	applog.Audit(c, "admin.gallery.update", map[string]any{"image_id": id})
	return ok(c, fiber.StatusOK, g)
}

// DELETE /api/v1/admin/gallery/:id
func (h *AdminHandler) GalleryDelete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if _, err := h.Gallery.Get(id); err != nil {
		return fail(c, fiber.StatusNotFound, "image not found")
	}
	if err := h.Gallery.Delete(id); err != nil {
		return failErr(c, "could not delete image", err)
	}
	applog.Audit(c, "admin.gallery.delete", map[string]any{"image_id": id})
	return okMessage(c, "image deleted")
}

// ---------- Team ----------

type teamInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

// GET /api/v1/team (public)
func (h *AdminHandler) TeamList(c *fiber.Ctx) error {
	rows, err := h.Team.List()
	if err != nil {
		return failErr(c, "could not load team", err)
	}
	if rows == nil {
		rows = []domain.TeamMember{}
	}
	return ok(c, fiber.StatusOK, rows)
}

// POST /api/v1/admin/team
func (h *AdminHandler) TeamCreate(c *fiber.Ctx) error {
	var in teamInput
	if err := c.BodyParser(&in); err != nil || in.Name == "" || in.Role == "" {
		return fail(c, fiber.StatusBadRequest, "name and role are required")
	}
	m := domain.TeamMember{
		ID: uuid.NewString(), Name: in.Name, Role: in.Role, Photo: in.Photo, Bio: in.Bio,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Team.Insert(m); err != nil {
		return failErr(c, "could not save member", err)
	}
	applog.Audit(c, "admin.team.create", map[string]any{"member_id": m.ID})
	return ok(c, fiber.StatusCreated, m)
}

// PUT /api/v1/admin/team/:id
func (h *AdminHandler) TeamUpdate(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	m, err := h.Team.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "member not found")
	}
	var in teamInput
	if err := c.BodyParser(&in); err != nil || in.Name == "" || in.Role == "" {
		return fail(c, fiber.StatusBadRequest, "name and role are required")
	}
	m.Name, m.Role, m.Photo, m.Bio = in.Name, in.Role, in.Photo, in.Bio
	if err := h.Team.Update(m); err != nil {
		return failErr(c, "could not save member", err)
	}
	applog.Audit(c, "admin.team.update", map[string]any{"member_id": id})
	return ok(c, fiber.StatusOK, m)
}

// DELETE /api/v1/admin/team/:id
func (h *AdminHandler) TeamDelete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if _, err := h.Team.Get(id); err != nil {
		return fail(c, fiber.StatusNotFound, "member not found")
	}
	if err := h.Team.Delete(id); err != nil {
		return failErr(c, "could not delete member", err)
	}
	applog.Audit(c, "admin.team.delete", map[string]any{"member_id": id})
	return okMessage(c, "member deleted")
}
