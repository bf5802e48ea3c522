package dto

import (
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/shopspring/decimal"
)

// Order processing outcomes.
const (
	StatusConfirmed           = "confirmed"
	StatusPartial             = "partial"
	StatusUnavailable         = "unavailable"
	StatusClarificationNeeded = "clarification_needed"
)

// OrderRequest is a normalized customer order. OrderSize may be left empty,
// in which case it is derived from the total requested units. RequestDate is
// the raw date string from the caller; malformed values fall back to now.
type OrderRequest struct {
	RequestID   string                `json:"request_id"`
	RequestText string                `json:"request_text,omitempty"`
	Lines       []model.OrderLineItem `json:"items" validate:"dive"`
	OrderSize   model.OrderSize       `json:"order_size,omitempty" validate:"omitempty,oneof=small medium large"`
	RequestDate string                `json:"request_date,omitempty"`
}

// LineAvailability is the per-line feasibility verdict.
type LineAvailability struct {
	ItemName  string `json:"item_name"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
	Feasible  bool   `json:"feasible"`
}

// OrderResult reports how an order was resolved. Quote is the full-order
// pricing; PartialQuote is set only on the partial path and is an offer, not a
// committed sale.
type OrderResult struct {
	Status            string                  `json:"status"`
	Message           string                  `json:"message"`
	Feasibility       []LineAvailability      `json:"feasibility,omitempty"`
	Quote             *model.PricedOrder      `json:"quote,omitempty"`
	PartialQuote      *model.PricedOrder      `json:"partial_quote,omitempty"`
	TotalRevenue      decimal.Decimal         `json:"total_revenue"`
	EntryIDs          []int64                 `json:"entry_ids,omitempty"`
	Reorders          []model.ReorderDecision `json:"reorders,omitempty"`
	ReorderEntryIDs   []int64                 `json:"reorder_entry_ids,omitempty"`
	EstimatedDelivery time.Time               `json:"estimated_delivery,omitzero"`
	DateSubstituted   bool                    `json:"date_substituted,omitempty"`
}
