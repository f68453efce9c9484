package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/users-service/internal/api/http/handlers"
	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
)

// APIPrefix is the global route prefix.
const APIPrefix = "/api/v1"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Masters        *handlers.MastersHandler
	Directors      *handlers.DirectorsHandler
	Operators      *handlers.OperatorsHandler
	Employees      *handlers.EmployeesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every personnel route declares its role policy here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	protect := cfg.AuthMiddleware.Protect
	allow := auth.AllowRoles
	api := app.Group(APIPrefix)

	masters := api.Group("/masters")
	masters.Get("/health", cfg.Health.Module("masters"))
	masters.Get("/", protect(allow(domain.RoleDirector, domain.RoleCallcentreAdmin), cfg.Masters.List))
	masters.Get("/:id", protect(auth.AnyAuthenticated(), cfg.Masters.Get))
	masters.Post("/", protect(allow(domain.RoleDirector), cfg.Masters.Create))
	masters.Put("/:id", protect(allow(domain.RoleDirector), cfg.Masters.Update))
	masters.Delete("/:id", protect(allow(domain.RoleDirector), cfg.Masters.Delete))
	masters.Put("/:id/documents", protect(allow(domain.RoleDirector, domain.RoleMaster), cfg.Masters.UpdateDocuments))

	directors := api.Group("/directors")
	directors.Get("/health", cfg.Health.Module("directors"))
	directors.Get("/", protect(allow(domain.RoleDirector, domain.RoleAdmin, domain.RoleCallcentreAdmin), cfg.Directors.List))
	directors.Get("/:id", protect(allow(domain.RoleDirector, domain.RoleAdmin, domain.RoleCallcentreAdmin), cfg.Directors.Get))
	directors.Post("/", protect(allow(domain.RoleAdmin, domain.RoleCallcentreAdmin), cfg.Directors.Create))
	directors.Put("/:id", protect(allow(domain.RoleDirector, domain.RoleAdmin), cfg.Directors.Update))
	directors.Delete("/:id", protect(allow(domain.RoleAdmin, domain.RoleCallcentreAdmin), cfg.Directors.Delete))

	operators := api.Group("/operators")
	operators.Get("/health", cfg.Health.Module("operators"))
	operators.Get("/", protect(allow(domain.RoleCallcentreAdmin, domain.RoleDirector), cfg.Operators.List))
	operators.Get("/:id", protect(allow(domain.RoleCallcentreAdmin, domain.RoleDirector), cfg.Operators.Get))
	operators.Post("/", protect(allow(domain.RoleCallcentreAdmin), cfg.Operators.Create))
	operators.Put("/:id", protect(allow(domain.RoleCallcentreAdmin), cfg.Operators.Update))
	operators.Delete("/:id", protect(allow(domain.RoleCallcentreAdmin), cfg.Operators.Delete))

	employees := api.Group("/employees")
	employees.Get("/health", cfg.Health.Module("employees"))
	employees.Get("/", protect(allow(domain.RoleDirector, domain.RoleCallcentreAdmin), cfg.Employees.List))
	employees.Get("/:id", protect(allow(domain.RoleDirector, domain.RoleAdmin, domain.RoleCallcentreAdmin), cfg.Employees.Get))
	employees.Post("/", protect(allow(domain.RoleDirector), cfg.Employees.Create))
	employees.Put("/:id", protect(allow(domain.RoleDirector), cfg.Employees.Update))

	users := api.Group("/users")
	users.Get("/profile", protect(auth.AnyAuthenticated(), cfg.Users.Profile))
}
