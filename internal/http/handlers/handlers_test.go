package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"pawmart/internal/http/handlers"
	"pawmart/internal/repos"
	"pawmart/internal/services"
)

type stubMail struct{}

func (stubMail) Send(to, subject, body string) error { return nil }

// newTestApp wires the production routes over a seeded in-memory store,
// minus the rate limiters.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	deps := handlers.NewDeps(db, stubMail{}, authSvc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/pets", deps.PetHandler.Search)
	api.Get("/pets/:id", deps.PetHandler.Detail)
	api.Get("/products", deps.ProductHandler.Search)
	api.Get("/products/:id", deps.ProductHandler.Detail)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Post("/pets", deps.PetHandler.Create)
	admin.Delete("/pets/:id", deps.PetHandler.Delete)
	admin.Get("/reservations", deps.ReservationHandler.List)
	admin.Put("/reservations/:id", deps.ReservationHandler.Update)
	return app, db
}

// bindSession gives a test request an authenticated session cookie.
func bindSession(t *testing.T, db *sqlx.DB, sid, userID string) {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession(sid, userID); err != nil {
		t.Fatal(err)
	}
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
		TotalItems  int `json:"totalItems"`
		Limit       int `json:"limit"`
	} `json:"pagination"`
}

func do(t *testing.T, app *fiber.App, method, target, cookie string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cookie})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: bad body: %v", method, target, err)
	}
	return resp.StatusCode, env
}

func TestPetSearchEnvelope(t *testing.T) {
	app, _ := newTestApp(t)

	code, env := do(t, app, "GET", "/api/v1/pets", "", nil)
	if code != 200 || !env.Success {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	if env.Pagination == nil {
		t.Fatal("list responses carry pagination")
	}
	if env.Pagination.TotalItems != 3 || env.Pagination.CurrentPage != 1 ||
		env.Pagination.TotalPages != 1 || env.Pagination.Limit != 9 {
		t.Fatalf("unexpected pagination: %+v", *env.Pagination)
	}
	var pets []map[string]any
	if err := json.Unmarshal(env.Data, &pets); err != nil {
		t.Fatal(err)
	}
	if len(pets) != 3 {
		t.Fatalf("want 3 seeded pets, got %d", len(pets))
	}
	for _, p := range pets {
		if p["images"] == nil {
			t.Fatalf("images must never be null: %v", p["id"])
		}
	}
}

func TestPetSearchFilters(t *testing.T) {
	app, _ := newTestApp(t)

	code, env := do(t, app, "GET", "/api/v1/pets?category=Dog,CAT", "", nil)
	if code != 200 {
		t.Fatalf("code=%d", code)
	}
	// category matching is case-insensitive set membership
	if env.Pagination.TotalItems != 2 {
		t.Fatalf("want 2 matches, got %d", env.Pagination.TotalItems)
	}

	// a malformed price bound degrades to no bound instead of an error
	code, env = do(t, app, "GET", "/api/v1/pets?price_min=abc&price_max=400", "", nil)
	if code != 200 {
		t.Fatalf("code=%d", code)
	}
	if env.Pagination.TotalItems != 2 {
		t.Fatalf("want 2 pets priced <= 400, got %d", env.Pagination.TotalItems)
	}
}

func TestProductSearch(t *testing.T) {
	app, _ := newTestApp(t)

	// seed rows are freshly created, so the recency filter keeps all three
	code, env := do(t, app, "GET", "/api/v1/products?isNewlyReleased=true", "", nil)
	if code != 200 || !env.Success {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	if env.Pagination == nil || env.Pagination.TotalItems != 3 {
		t.Fatalf("unexpected pagination: %+v", env.Pagination)
	}
	var prods []map[string]any
	if err := json.Unmarshal(env.Data, &prods); err != nil {
		t.Fatal(err)
	}
	for _, p := range prods {
		if p["isNewlyReleased"] != true {
			t.Fatalf("recency flag missing on %v", p["id"])
		}
	}

	code, env = do(t, app, "GET", "/api/v1/products?category=accessories", "", nil)
	if code != 200 || env.Pagination.TotalItems != 2 {
		t.Fatalf("category filter: code=%d pagination=%+v", code, env.Pagination)
	}
}

func TestPetDetail(t *testing.T) {
	app, _ := newTestApp(t)

	code, env := do(t, app, "GET", "/api/v1/pets/pet-buddy", "", nil)
	if code != 200 || !env.Success {
		t.Fatalf("code=%d env=%+v", code, env)
	}

	code, env = do(t, app, "GET", "/api/v1/pets/pet-nope", "", nil)
	if code != 404 || env.Success {
		t.Fatalf("missing pet: code=%d env=%+v", code, env)
	}

	code, _ = do(t, app, "GET", "/api/v1/pets/bad%20id", "", nil)
	if code != 400 {
		t.Fatalf("malformed id: code=%d", code)
	}
}

func TestAdminGate(t *testing.T) {
	app, db := newTestApp(t)
	bindSession(t, db, "sid-user", "u-alice")
	bindSession(t, db, "sid-admin", "u-admin")

	// no session
	code, env := do(t, app, "DELETE", "/api/v1/admin/pets/pet-buddy", "", nil)
	if code != 401 || env.Success {
		t.Fatalf("anonymous: code=%d env=%+v", code, env)
	}

	// session bound to a non-admin
	code, _ = do(t, app, "DELETE", "/api/v1/admin/pets/pet-buddy", "sid-user", nil)
	if code != 403 {
		t.Fatalf("non-admin: code=%d", code)
	}

	// admin session
	code, env = do(t, app, "DELETE", "/api/v1/admin/pets/pet-buddy", "sid-admin", nil)
	if code != 200 || !env.Success {
		t.Fatalf("admin delete: code=%d env=%+v", code, env)
	}
	code, _ = do(t, app, "GET", "/api/v1/pets/pet-buddy", "", nil)
	if code != 404 {
		t.Fatalf("deleted pet still served: code=%d", code)
	}
}

func TestAdminCreatePetValidation(t *testing.T) {
	app, db := newTestApp(t)
	bindSession(t, db, "sid-admin", "u-admin")

	payload := map[string]any{
		"name": "Luna", "category": "cat", "type": "Shorthair",
		"age": "1 year", "color": "Black", "gender": "Female",
		"size": "Small", "weight": 3.8, "location": "Dallas, TX",
		// price missing
	}
	code, env := do(t, app, "POST", "/api/v1/admin/pets", "sid-admin", payload)
	if code != 400 || env.Success {
		t.Fatalf("missing price: code=%d env=%+v", code, env)
	}
	if len(env.Errors) == 0 {
		t.Fatal("validation failures carry field messages")
	}

	payload["price"] = 200.0
	code, env = do(t, app, "POST", "/api/v1/admin/pets", "sid-admin", payload)
	if code != 201 || !env.Success {
		t.Fatalf("valid create: code=%d env=%+v", code, env)
	}
	var created map[string]any
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created["id"] == "" || created["isNewlyAdded"] != true {
		t.Fatalf("unexpected created pet: %v", created)
	}
}

func TestReservationUpdateBadID(t *testing.T) {
	app, db := newTestApp(t)
	bindSession(t, db, "sid-admin", "u-admin")

	code, env := do(t, app, "PUT", "/api/v1/admin/reservations/bad%20id", "sid-admin",
		map[string]any{"status": "confirmed"})
	if code != 400 || env.Message != "invalid id" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
}

func TestReservationUpdateEmptyBody(t *testing.T) {
	app, db := newTestApp(t)
	bindSession(t, db, "sid-admin", "u-admin")
	mustExec(t, db, `
		INSERT INTO reservations(id, name, email, phone, date, status, created_at)
		VALUES('res-1','Dana','dana@example.com','','2026-09-15','pending','2026-08-01T00:00:00Z')`)

	code, _ := do(t, app, "PUT", "/api/v1/admin/reservations/res-1", "sid-admin",
		map[string]any{})
	if code != 400 {
		t.Fatalf("empty update: code=%d", code)
	}

	code, env := do(t, app, "PUT", "/api/v1/admin/reservations/res-1", "sid-admin",
		map[string]any{"status": "confirmed"})
	if code != 200 || !env.Success {
		t.Fatalf("valid update: code=%d env=%+v", code, env)
	}
}

func mustExec(t *testing.T, db *sqlx.DB, q string, args ...any) {
	t.Helper()
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatal(err)
	}
}
