package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/stock-relocation/internal/application/auth"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Relocations   RelocationService
	Defaults      DefaultsService
	Form          FormService
	Confirm       ConfirmService
	Reports       ReportService
	Configuration ConfigurationService
	// Metrics handler Prometheus; nil = sin /metrics.
	Metrics     nethttp.Handler
	ServiceName string
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Reubicaciones: rutas fijas antes de /:id
	relocations := protected.Group("/relocations")
	h := NewRelocationHandler(deps.Relocations, deps.Defaults, deps.Form, deps.Confirm, deps.Reports)
	relocations.Get("/defaults", h.Defaults)
	relocations.Post("/onchange/product", h.OnChangeProduct)
	relocations.Post("/onchange/quantity", h.OnChangeQuantity)
	relocations.Get("/export", h.Export)
	relocations.Post("/confirm", writers, h.Confirm)
	relocations.Get("/", h.List)
	relocations.Post("/", writers, h.Create)
	relocations.Get("/:id/pdf", h.PDF)
	relocations.Get("/:id", h.GetByID)
	relocations.Put("/:id", writers, h.Update)
	relocations.Delete("/:id", writers, h.Delete)

	// Configuración de stock
	stock := protected.Group("/stock")
	cfgHandler := NewConfigurationHandler(deps.Configuration)
	stock.Get("/configuration", cfgHandler.Get)
	stock.Put("/configuration", RequireRole(entity.RoleAdmin), cfgHandler.Update)
}
