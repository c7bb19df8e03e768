package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ricardo-aragon/ticashop-desk/internal/api/http/handlers"
	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	View           *handlers.ViewHandler
	Tickets        *handlers.TicketsHandler
	Licitaciones   *handlers.LicitacionesHandler
	Usuarios       *handlers.UsuariosHandler
	Reportes       *handlers.ReportesHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Get("/auth/me", cfg.Auth.Me)

	api.Get("/view/status", cfg.View.Status)
	api.Post("/view/reload", cfg.View.Reload)

	api.Get("/notifications", cfg.Notifications.List)
	api.Delete("/notifications", cfg.Notifications.Clear)

	tickets := api.Group("/tickets", auth.RequireView(auth.ViewTickets))
	tickets.Get("/", auth.RequireAction(auth.ActionTicketRead), cfg.Tickets.List)
	tickets.Post("/", auth.RequireAction(auth.ActionTicketCreate), cfg.Tickets.Create)
	tickets.Get("/:id", auth.RequireAction(auth.ActionTicketRead), cfg.Tickets.Get)
	tickets.Patch("/:id", auth.RequireAction(auth.ActionTicketUpdate), cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireAction(auth.ActionTicketDelete), cfg.Tickets.Delete)
	tickets.Post("/:id/close", auth.RequireAction(auth.ActionTicketClose), cfg.Tickets.Close)
	tickets.Post("/:id/assign", auth.RequireAction(auth.ActionTicketAssign), cfg.Tickets.Assign)
	tickets.Post("/:id/escalate", auth.RequireAction(auth.ActionTicketEscalate), cfg.Tickets.Escalate)
	tickets.Get("/:id/comments", auth.RequireAction(auth.ActionTicketRead), cfg.Tickets.ListComments)
	tickets.Post("/:id/comments", auth.RequireAction(auth.ActionCommentCreate), cfg.Tickets.AddComment)

	licitaciones := api.Group("/licitaciones", auth.RequireView(auth.ViewLicitaciones))
	licitaciones.Get("/", auth.RequireAction(auth.ActionLicitacionRead), cfg.Licitaciones.List)
	licitaciones.Post("/", auth.RequireAction(auth.ActionLicitacionWrite), cfg.Licitaciones.Create)
	licitaciones.Get("/:id", auth.RequireAction(auth.ActionLicitacionRead), cfg.Licitaciones.Get)
	licitaciones.Patch("/:id", auth.RequireAction(auth.ActionLicitacionWrite), cfg.Licitaciones.Update)
	licitaciones.Delete("/:id", auth.RequireAction(auth.ActionLicitacionWrite), cfg.Licitaciones.Delete)

	reportes := api.Group("/reportes", auth.RequireView(auth.ViewReportes))
	reportes.Get("/", auth.RequireAction(auth.ActionReporteRead), cfg.Reportes.List)
	reportes.Get("/latest", auth.RequireAction(auth.ActionReporteRead), cfg.Reportes.Latest)
	reportes.Post("/", auth.RequireAction(auth.ActionReporteCreate), cfg.Reportes.Generate)

	api.Get("/stats", cfg.Reportes.Stats)
	api.Get("/export/tickets", auth.RequireAction(auth.ActionExport), cfg.Reportes.ExportTickets)
	api.Get("/export/licitaciones", auth.RequireAction(auth.ActionExport), cfg.Reportes.ExportLicitaciones)

	usuarios := api.Group("/usuarios", auth.RequireView(auth.ViewAdministracion), auth.RequireAction(auth.ActionUserManage))
	usuarios.Get("/", cfg.Usuarios.List)
	usuarios.Post("/", cfg.Usuarios.Create)
	usuarios.Put("/:id", cfg.Usuarios.Update)
	usuarios.Delete("/:id", cfg.Usuarios.Delete)
}
