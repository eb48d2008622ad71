package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/api/dto"
	"github.com/spec-kit/shopbot-service/internal/auth"
	"github.com/spec-kit/shopbot-service/internal/service"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// DashboardHandler serves the admin landing page summary.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Summary GET /app.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}

	summary, err := h.service.Summary(c.UserContext(), shop.ID)
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(summary.TicketsByState))
	for status, count := range summary.TicketsByState {
		byStatus[string(status)] = count
	}

	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Conversations:   summary.Stats.Conversations,
		AutoReplies:     summary.Stats.AutoReplies,
		Escalations:     summary.Stats.Escalations,
		ResolutionRate:  summary.ResolutionRate,
		TicketsTotal:    summary.TicketsTotal,
		TicketsByStatus: byStatus,
	}})
}
