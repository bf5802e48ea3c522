package model

import "github.com/shopspring/decimal"

// CatalogItem is static reference data: the sellable paper products and their
// list prices. Loaded once at startup, immutable at runtime.
type CatalogItem struct {
	Name      string          `db:"name" json:"name"`
	Category  string          `db:"category" json:"category"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// InventoryRecord is the materialized subset of the catalog used for reporting
// and valuation. It is refreshed by seeding, never by transactions; stock on
// hand always comes from the ledger.
type InventoryRecord struct {
	ItemName      string          `db:"item_name" json:"item_name"`
	Category      string          `db:"category" json:"category"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	CurrentStock  int64           `db:"current_stock" json:"current_stock"`
	MinStockLevel int64           `db:"min_stock_level" json:"min_stock_level"`
}
