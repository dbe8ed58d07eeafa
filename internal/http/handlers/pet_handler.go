package handlers

import (
	applog "pawmart/internal/log"
	"pawmart/internal/query"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PetHandler struct {
	Catalog *services.CatalogService
}

// petRules is the per-field normalization table for pet search.
var petRules = []query.Rule{
	{Param: "category", Field: "category", Kind: query.InFold},
	{Param: "type", Field: "type", Kind: query.AnyContains},
	{Param: "gender", Field: "gender", Kind: query.In},
	{Param: "size", Field: "size", Kind: query.In},
	{Param: "age", Field: "age", Kind: query.Exact},
	{Param: "color", Field: "color", Kind: query.Exact},
	{Param: "weight", Field: "weight", Kind: query.Numeric},
	{Param: "name_search", Field: "name", Kind: query.Contains},
	{Param: "breed_search", Field: "breed", Kind: query.Contains},
	{Param: "location_search", Field: "location", Kind: query.Contains},
}

var petSortCols = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"name":      "name",
	"weight":    "weight",
}

// GET /api/v1/pets
func (h *PetHandler) Search(c *fiber.Ctx) error {
	spec, warns := query.Parse(func(k string) string { return c.Query(k) }, petRules, query.Options{
		SortColumns:       petSortCols,
		DefaultSortColumn: "created_at",
		FreshParam:        "isNewlyAdded",
	})
	for _, w := range warns {
		applog.Security(c, "pets.query.skip", map[string]any{"reason": w})
	}

	pets, page, err := h.Catalog.SearchPets(spec)
	if err != nil {
		applog.Error(c, "pets.search.fail", err, nil)
		return failErr(c, "could not load pets", err)
	}
	return okPage(c, pets, page)
}

// GET /api/v1/pets/:id
func (h *PetHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	p, err := h.Catalog.GetPet(id)
	if err != nil {
		return failService(c, err)
	}
	return ok(c, fiber.StatusOK, p)
}

// POST /api/v1/admin/pets
func (h *PetHandler) Create(c *fiber.Ctx) error {
	var in services.PetInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	p, err := h.Catalog.CreatePet(in)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.pets.create", map[string]any{"pet_id": p.ID})
	return ok(c, fiber.StatusCreated, p)
}

// PUT /api/v1/admin/pets/:id
func (h *PetHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	var in services.PetInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	p, err := h.Catalog.UpdatePet(id, in)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.pets.update", map[string]any{"pet_id": id})
	return ok(c, fiber.StatusOK, p)
}

// DELETE /api/v1/admin/pets/:id
func (h *PetHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.DeletePet(id); err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.pets.delete", map[string]any{"pet_id": id})
	return okMessage(c, "pet deleted")
}
