package dto

import "github.com/beaverschoice/supply-service/internal/model"

// PriceRequest asks for an itemized quote. OrderSize may be omitted; it is
// then derived from the total requested units.
type PriceRequest struct {
	Lines     []model.OrderLineItem `json:"items" validate:"required,min=1,dive"`
	OrderSize model.OrderSize       `json:"order_size" validate:"omitempty,oneof=small medium large"`
}

// HistorySearchRequest searches the quote archive. All terms must match.
type HistorySearchRequest struct {
	Terms []string `json:"search_terms" validate:"required,min=1"`
	Limit int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
}
