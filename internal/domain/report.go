package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the aggregate snapshot served to the dashboard.
type DashboardSummary struct {
	ActiveLands    int             `json:"active_lands"`
	ActiveLoans    int             `json:"active_loans"`
	PendingOrders  int             `json:"pending_orders"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
}

// MonthRevenue is one point of the revenue time series.
type MonthRevenue struct {
	Month   string          `json:"month" db:"month"`
	Revenue decimal.Decimal `json:"revenue" db:"revenue"`
}
