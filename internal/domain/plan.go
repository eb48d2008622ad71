package domain

// Plan describes a subscription tier shown on the pricing page. The catalog
// is static; checkout is handled by the hosting platform's billing surface.
type Plan struct {
	Code            string
	Name            string
	Description     string
	MonthlyPriceUSD int
	Features        []string
}

// DefaultPlans returns the catalog in display order.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Code:            "starter",
			Name:            "Plan Básico",
			Description:     "Para tiendas que están empezando",
			MonthlyPriceUSD: 0,
			Features: []string{
				"Verificación de pedidos limitada",
				"Chatbot con respuestas predefinidas",
			},
		},
		{
			Code:            "pro",
			Name:            "Plan Pro",
			Description:     "Ideal para negocios en crecimiento",
			MonthlyPriceUSD: 50,
			Features: []string{
				"Verificación de pedidos ilimitada",
				"Acceso completo a métricas",
				"Soporte prioritario",
			},
		},
	}
}
