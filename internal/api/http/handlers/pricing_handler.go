package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/api/dto"
	"github.com/spec-kit/shopbot-service/internal/domain"
)

// PricingHandler serves the plan catalog for the pricing page. Checkout is
// handled by the hosting platform's billing surface, not here.
type PricingHandler struct{}

// NewPricingHandler constructs handler.
func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// ListPlans GET /app/pricing.
func (h *PricingHandler) ListPlans(c *fiber.Ctx) error {
	plans := domain.DefaultPlans()
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		items = append(items, dto.PlanResponse{
			Code:            plan.Code,
			Name:            plan.Name,
			Description:     plan.Description,
			MonthlyPriceUSD: plan.MonthlyPriceUSD,
			Features:        plan.Features,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
