package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the transaction type of a ledger entry.
type EntryKind string

const (
	KindStockOrder EntryKind = "stock_order"
	KindSale       EntryKind = "sale"
)

func (k EntryKind) Valid() bool {
	return k == KindStockOrder || k == KindSale
}

// LedgerEntry is one immutable row of the append-only ledger. ItemName and
// Units are nil for pure cash events. Price is the total amount for the entry,
// not a unit price.
type LedgerEntry struct {
	ID       int64           `json:"id"`
	ItemName *string         `json:"item_name"`
	Kind     EntryKind       `json:"kind"`
	Units    *int64          `json:"units"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"entry_date"`
}
