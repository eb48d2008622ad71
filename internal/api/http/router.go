package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/api/http/handlers"
	"github.com/spec-kit/shopbot-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Dashboard      *handlers.DashboardHandler
	Chatbot        *handlers.ChatbotHandler
	Tickets        *handlers.TicketsHandler
	Pricing        *handlers.PricingHandler
	ShopMiddleware *auth.ShopMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/app", cfg.ShopMiddleware.Handle, cfg.Dashboard.Summary)

	admin := app.Group("/app", cfg.ShopMiddleware.Handle)
	admin.Get("/pricing", cfg.Pricing.ListPlans)

	admin.Get("/chatbot", cfg.Chatbot.GetConfig)
	admin.Put("/chatbot", cfg.Chatbot.UpdateConfig)
	admin.Post("/chatbot/responses", cfg.Chatbot.AddResponse)
	admin.Post("/chatbot/messages", cfg.Chatbot.HandleMessage)

	admin.Get("/tickets", cfg.Tickets.ListTickets)
	admin.Post("/tickets", cfg.Tickets.CreateTicket)
	admin.Post("/tickets/status", cfg.Tickets.UpdateStatus)
}
