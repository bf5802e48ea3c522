package supply

import (
	"context"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
)

// ExecutionResult is the outcome of a processed reorder: the assessment plus
// the ledger entry id when a stock order was committed.
type ExecutionResult struct {
	Decision model.ReorderDecision `json:"details"`
	Ordered  bool                  `json:"ordered"`
	EntryID  int64                 `json:"entry_id,omitempty"`
}

// Usecase is the reorder planner.
type Usecase interface {
	// Assess decides whether the item's stock as of the given date covers the
	// needed quantity. When it does not, the decision carries a reorder of at
	// least 500 units, the supplier delivery date and the estimated cost.
	// Items missing from the catalog are costed at zero, never rejected.
	Assess(ctx context.Context, itemName string, quantityNeeded int64, date time.Time) (model.ReorderDecision, error)

	// Execute runs Assess and commits the stock order entry when one is
	// needed. A no-reorder decision commits nothing.
	Execute(ctx context.Context, itemName string, quantityNeeded int64, date time.Time) (ExecutionResult, error)
}
