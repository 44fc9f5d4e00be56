package handlers

import (
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"easyshop/internal/config"
	"easyshop/internal/domain"
	applog "easyshop/internal/log"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(d *Deps, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "easyshop",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(applog.AccessLog())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	app.Use(Authenticate(d.Auth))

	admin := RequireRole(domain.RoleAdmin)

	// Categories
	cats := d.CategoryHandler
	app.Get("/categories", cats.List)
	app.Get("/categories/:id", cats.Get)
	app.Get("/categories/:id/products", cats.Products)
	app.Post("/categories", admin, cats.Create)
	app.Put("/categories/:id", admin, cats.Update)
	app.Delete("/categories/:id", admin, cats.Delete)

	// Products
	prods := d.ProductHandler
	app.Get("/products", prods.Search)
	app.Get("/products/:id", prods.Get)
	app.Post("/products", admin, prods.Create)
	app.Put("/products/:id", admin, prods.Update)
	app.Delete("/products/:id", admin, prods.Delete)

	// Auth routes (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        cfg.LoginRateMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), d.AuthHandler.Login)
	app.Post("/register", d.AuthHandler.Register)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	return app
}
