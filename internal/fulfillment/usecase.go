package fulfillment

import (
	"context"

	"github.com/beaverschoice/supply-service/internal/fulfillment/dto"
	"github.com/beaverschoice/supply-service/internal/model"
)

// Parser turns free-text customer requests into normalized order lines. The
// implementation lives outside this service; handlers accept structured lines
// directly when no parser is wired.
type Parser interface {
	Parse(text string) ([]model.OrderLineItem, model.OrderSize, error)
}

// Usecase coordinates feasibility, quoting, reorders and the sale commit for
// one customer order at a time.
type Usecase interface {
	Process(ctx context.Context, req dto.OrderRequest) (dto.OrderResult, error)
}
