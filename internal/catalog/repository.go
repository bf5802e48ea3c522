package catalog

import (
	"context"

	"github.com/beaverschoice/supply-service/internal/model"
)

// Repository stores the immutable product catalog and the seeded inventory
// reference set. Both are written once at bootstrap and read-only afterwards.
type Repository interface {
	ReplaceCatalog(ctx context.Context, items []model.CatalogItem) error
	// GetItem returns (nil, nil) when the name is not in the catalog; callers
	// treat unknown items as zero-cost rather than erroring.
	GetItem(ctx context.Context, name string) (*model.CatalogItem, error)
	ListItems(ctx context.Context) ([]model.CatalogItem, error)

	ReplaceInventoryRecords(ctx context.Context, records []model.InventoryRecord) error
	ListInventoryRecords(ctx context.Context) ([]model.InventoryRecord, error)
}
