package catalog

import (
	"context"

	"github.com/beaverschoice/supply-service/internal/model"
)

// Usecase exposes the catalog read surface and the one-shot data bootstrap.
type Usecase interface {
	// Bootstrap loads the product catalog, samples the starting inventory and
	// records the opening ledger position. Safe to call on every startup: once
	// the ledger has entries it only refreshes the catalog tables.
	Bootstrap(ctx context.Context) error

	ListItems(ctx context.Context) ([]model.CatalogItem, error)
	GetItem(ctx context.Context, name string) (*model.CatalogItem, error)
	ListInventoryRecords(ctx context.Context) ([]model.InventoryRecord, error)
}
