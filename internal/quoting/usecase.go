package quoting

import (
	"context"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
)

// Usecase prices orders and serves the quote archive.
type Usecase interface {
	// Price computes itemized bulk pricing for the given lines. Lines whose
	// item is not in the catalog are silently omitted. Pure: no stock check,
	// no writes, same input always yields the same quote.
	Price(ctx context.Context, lines []model.OrderLineItem, size model.OrderSize) (model.PricedOrder, error)

	// Archive stores the customer request text and the quote issued for it,
	// returning the archived request id.
	Archive(ctx context.Context, request string, order model.PricedOrder, orderDate time.Time, jobType, eventType string) (int64, error)

	SearchHistory(ctx context.Context, terms []string, limit int) ([]model.HistoricalQuote, error)
}
