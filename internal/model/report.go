package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemValuation is one line of the inventory valuation breakdown.
type ItemValuation struct {
	ItemName  string          `json:"item_name"`
	Stock     int64           `json:"stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"`
}

// TopSeller ranks an item by cumulative sale revenue.
type TopSeller struct {
	ItemName     string          `json:"item_name"`
	TotalUnits   int64           `json:"total_units"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// StockAnomaly flags an item whose computed stock went negative, which points
// at entries committed out of order. A data-quality signal, not an error.
type StockAnomaly struct {
	ItemName string `json:"item_name"`
	Stock    int64  `json:"stock"`
}

// FinancialReport is a point-in-time snapshot of the company's position.
type FinancialReport struct {
	AsOf           time.Time       `json:"as_of_date"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TotalAssets    decimal.Decimal `json:"total_assets"`
	Inventory      []ItemValuation `json:"inventory_summary"`
	TopSellers     []TopSeller     `json:"top_selling_products"`
	Anomalies      []StockAnomaly  `json:"stock_anomalies,omitempty"`
}
