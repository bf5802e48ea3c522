package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSize classifies an order for discount purposes.
type OrderSize string

const (
	SizeSmall  OrderSize = "small"
	SizeMedium OrderSize = "medium"
	SizeLarge  OrderSize = "large"
)

// ClassifyOrderSize derives the size class from the total requested units.
// Thresholds are strict: 5001+ units is large, 1001+ is medium.
func ClassifyOrderSize(totalUnits int64) OrderSize {
	switch {
	case totalUnits > 5000:
		return SizeLarge
	case totalUnits > 1000:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// OrderLineItem is one requested item/quantity pair. Not persisted.
type OrderLineItem struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

// PricedLine is the itemized pricing for a single order line.
type PricedLine struct {
	ItemName     string          `json:"item_name"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Discount     decimal.Decimal `json:"discount"`
	FinalPrice   decimal.Decimal `json:"final_price"`
}

// PricedOrder is the full output of the pricing engine. Lines requesting items
// absent from the catalog are omitted.
type PricedOrder struct {
	Lines       []PricedLine    `json:"items"`
	Total       decimal.Decimal `json:"total_cost"`
	OrderSize   OrderSize       `json:"order_size"`
	Explanation string          `json:"explanation"`
}

// ReorderDecision is the reorder planner's assessment for one item. When no
// reorder is needed only CurrentStock and QuantityNeeded are meaningful.
type ReorderDecision struct {
	ItemName        string          `json:"item_name"`
	NeedsReorder    bool            `json:"needs_reorder"`
	CurrentStock    int64           `json:"current_stock"`
	QuantityNeeded  int64           `json:"quantity_needed"`
	ReorderQuantity int64           `json:"reorder_quantity,omitempty"`
	DeliveryDate    time.Time       `json:"delivery_date,omitzero"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
}
