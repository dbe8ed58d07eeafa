package handlers

import (
	applog "pawmart/internal/log"
	"pawmart/internal/query"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

var productRules = []query.Rule{
	{Param: "category", Field: "category", Kind: query.InFold},
	{Param: "type", Field: "type", Kind: query.AnyContains},
	{Param: "color", Field: "color", Kind: query.Exact},
	{Param: "name_search", Field: "name", Kind: query.Contains},
}

var productSortCols = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
}

// GET /api/v1/products
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	spec, warns := query.Parse(func(k string) string { return c.Query(k) }, productRules, query.Options{
		SortColumns:       productSortCols,
		DefaultSortColumn: "created_at",
		FreshParam:        "isNewlyReleased",
	})
	for _, w := range warns {
		applog.Security(c, "products.query.skip", map[string]any{"reason": w})
	}

	products, page, err := h.Catalog.SearchProducts(spec)
	if err != nil {
		applog.Error(c, "products.search.fail", err, nil)
		return failErr(c, "could not load products", err)
	}
	return okPage(c, products, page)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return failService(c, err)
	}
	return ok(c, fiber.StatusOK, p)
}

// POST /api/v1/admin/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID})
	return ok(c, fiber.StatusCreated, p)
}

// PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return ok(c, fiber.StatusOK, p)
}

// DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return failService(c, err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return okMessage(c, "product deleted")
}
