package dto

// DashboardResponse is the admin landing page summary.
type DashboardResponse struct {
	Conversations   int64            `json:"conversations"`
	AutoReplies     int64            `json:"auto_replies"`
	Escalations     int64            `json:"escalations"`
	ResolutionRate  float64          `json:"resolution_rate"`
	TicketsTotal    int64            `json:"tickets_total"`
	TicketsByStatus map[string]int64 `json:"tickets_by_status"`
}

// PlanResponse mirrors one subscription tier on the pricing page.
type PlanResponse struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MonthlyPriceUSD int      `json:"monthly_price_usd"`
	Features        []string `json:"features"`
}
