package ledger

import (
	"context"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/shopspring/decimal"
)

// StockStatus is the point-in-time view of a single item, combining the
// computed stock level with its catalog listing when one exists.
type StockStatus struct {
	ItemName  string           `json:"item_name"`
	Stock     int64            `json:"current_stock"`
	InStock   bool             `json:"in_stock"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Category  string           `json:"category,omitempty"`
}

// Usecase is the ledger aggregation surface. Every reading is a pure function
// of the entries dated at or before the cutoff, so historical cutoffs return
// the same answer on every call.
type Usecase interface {
	Append(ctx context.Context, input AppendInput) (int64, error)
	Entries(ctx context.Context, f Filter) ([]model.LedgerEntry, error)

	StockAsOf(ctx context.Context, itemName string, until time.Time) (int64, error)
	StockStatus(ctx context.Context, itemName string, until time.Time) (StockStatus, error)
	AllStockAsOf(ctx context.Context, until time.Time) (map[string]int64, error)

	// CashBalanceAsOf sums sale prices and subtracts stock order prices up to
	// the cutoff.
	CashBalanceAsOf(ctx context.Context, until time.Time) (decimal.Decimal, error)

	// InventoryValuation prices the computed stock of every item in the seeded
	// inventory reference set. Items sold past zero contribute negative value.
	InventoryValuation(ctx context.Context, until time.Time) ([]model.ItemValuation, decimal.Decimal, error)

	NegativeStockAsOf(ctx context.Context, until time.Time) ([]model.StockAnomaly, error)
}
