package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"pawmart/internal/config"
	"pawmart/internal/http/handlers"
	applog "pawmart/internal/log"
	"pawmart/internal/mail"
	"pawmart/internal/repos"
	"pawmart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	notifier := mail.New(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, notifier, authSvc)
	api := app.Group("/api/v1")

	// Catalog (search endpoints throttled a bit tighter)
	searchLimiter := limiter.New(limiter.Config{Max: 30, Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|search" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "rate limit exceeded, retry soon",
			})
		},
	})
	api.Get("/pets", searchLimiter, deps.PetHandler.Search)
	api.Get("/pets/:id", deps.PetHandler.Detail)
	api.Get("/products", searchLimiter, deps.ProductHandler.Search)
	api.Get("/products/:id", deps.ProductHandler.Detail)

	// Reviews
	api.Get("/products/:id/reviews", deps.ReviewHandler.List)
	api.Post("/products/:id/reviews", deps.ReviewHandler.Create)

	// Cart & Orders
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:productId", deps.CartHandler.SetQty)
	api.Delete("/cart/items/:productId", deps.CartHandler.Remove)
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders", deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.View)

	// Wishlist
	api.Get("/wishlist", deps.WishlistHandler.List)
	api.Post("/wishlist", deps.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", deps.WishlistHandler.Unsave)

	// Reservations (public booking, admin-managed afterwards)
	api.Post("/reservations", deps.ReservationHandler.Create)

	// Public content
	api.Get("/gallery", deps.AdminHandler.GalleryList)
	api.Get("/team", deps.AdminHandler.TeamList)

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "too many attempts, try again later",
			})
		},
	}), authH.Login)
	api.Post("/auth/logout", authH.Logout)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)

	admin.Post("/pets", deps.PetHandler.Create)
	admin.Put("/pets/:id", deps.PetHandler.Update)
	admin.Delete("/pets/:id", deps.PetHandler.Delete)

	admin.Post("/products", deps.ProductHandler.Create)
	admin.Put("/products/:id", deps.ProductHandler.Update)
	admin.Delete("/products/:id", deps.ProductHandler.Delete)

	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	admin.Get("/reservations", deps.ReservationHandler.List)
	admin.Get("/reservations/:id", deps.ReservationHandler.Detail)
	admin.Put("/reservations/:id", deps.ReservationHandler.Update)
	admin.Delete("/reservations/:id", deps.ReservationHandler.Delete)

	admin.Post("/gallery", deps.AdminHandler.GalleryCreate)
	admin.Put("/gallery/:id", deps.AdminHandler.GalleryUpdate)
	admin.Delete("/gallery/:id", deps.AdminHandler.GalleryDelete)

	admin.Post("/team", deps.AdminHandler.TeamCreate)
	admin.Put("/team/:id", deps.AdminHandler.TeamUpdate)
	admin.Delete("/team/:id", deps.AdminHandler.TeamDelete)

	admin.Delete("/reviews/:id", deps.ReviewHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
