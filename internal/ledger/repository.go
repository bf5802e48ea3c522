package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidEntry rejects an append with an unrecognized kind or negative
	// units. Nothing is written.
	ErrInvalidEntry = errors.New("invalid ledger entry")

	// ErrInsufficientStock aborts a sale commit whose in-transaction
	// re-validation found less stock than the feasibility check did.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// AppendInput describes one event to record. ItemName and Units are nil for
// pure cash events.
type AppendInput struct {
	ItemName *string
	Kind     model.EntryKind `validate:"required,oneof=stock_order sale"`
	Units    *int64
	Price    decimal.Decimal
	Date     time.Time
}

// Filter narrows a ledger query. Until is inclusive.
type Filter struct {
	ItemName *string
	Kind     *model.EntryKind
	Until    time.Time
}

// SaleLine is one line of an atomic sale commit. Price is the line's final
// discounted total.
type SaleLine struct {
	ItemName string
	Units    int64
	Price    decimal.Decimal
}

// Repository is the append-only ledger store. Entries are never updated or
// deleted; ids are assigned monotonically on commit.
type Repository interface {
	Append(ctx context.Context, input AppendInput) (int64, error)
	Query(ctx context.Context, f Filter) ([]model.LedgerEntry, error)

	// CommitSale writes one sale entry per line inside a single transaction,
	// re-validating stock per line immediately before the insert. On any
	// shortfall the whole commit rolls back with ErrInsufficientStock.
	CommitSale(ctx context.Context, lines []SaleLine, date time.Time) ([]int64, error)

	// StockAsOf nets stock orders against sales for one item up to the cutoff.
	// Zero when the item has no entries.
	StockAsOf(ctx context.Context, itemName string, until time.Time) (int64, error)

	// AllStockAsOf maps item name to computed stock, restricted to items with
	// positive stock. The positive-only filter is the reporting convention for
	// the active inventory view, not a floor on the arithmetic.
	AllStockAsOf(ctx context.Context, until time.Time) (map[string]int64, error)

	// NegativeStockAsOf is the integrity probe for the same computation:
	// items whose net stock is below zero.
	NegativeStockAsOf(ctx context.Context, until time.Time) ([]model.StockAnomaly, error)
}
