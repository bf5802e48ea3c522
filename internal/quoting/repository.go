package quoting

import (
	"context"

	"github.com/beaverschoice/supply-service/internal/model"
)

// DefaultSearchLimit caps history searches when the caller does not ask for a
// specific limit.
const DefaultSearchLimit = 5

// History is the archive of past customer requests and the quotes issued for
// them. Rows are only ever added.
type History interface {
	// SaveRequest archives the raw customer request text and returns its id.
	SaveRequest(ctx context.Context, response string) (int64, error)
	SaveQuote(ctx context.Context, q model.Quote) error

	// Search returns quotes where every term matches the original request text
	// or the quote explanation, case-insensitively, most recent order first.
	Search(ctx context.Context, terms []string, limit int) ([]model.HistoricalQuote, error)
}
