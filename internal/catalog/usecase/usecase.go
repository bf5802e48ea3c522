package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/beaverschoice/supply-service/internal/catalog"
	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SeedParams controls the bootstrap dataset.
type SeedParams struct {
	InventoryCoverage float64
	RandSeed          int64
	OpeningCash       decimal.Decimal
	OpeningDate       time.Time
}

type catalogUC struct {
	catalogRepo catalog.Repository
	ledgerRepo  ledger.Repository
	params      SeedParams
	logger      *zap.Logger
}

func NewCatalogUsecase(catalogRepo catalog.Repository, ledgerRepo ledger.Repository, params SeedParams, logger *zap.Logger) catalog.Usecase {
	return &catalogUC{
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		params:      params,
		logger:      logger,
	}
}

func (u *catalogUC) Bootstrap(ctx context.Context) error {
	items := catalog.PaperSupplies()
	if err := u.catalogRepo.ReplaceCatalog(ctx, items); err != nil {
		return fmt.Errorf("bootstrap catalog: %w", err)
	}

	records := catalog.SampleInventory(items, u.params.InventoryCoverage, u.params.RandSeed)
	if err := u.catalogRepo.ReplaceInventoryRecords(ctx, records); err != nil {
		return fmt.Errorf("bootstrap inventory records: %w", err)
	}

	existing, err := u.ledgerRepo.Query(ctx, ledger.Filter{Until: time.Now()})
	if err != nil {
		return fmt.Errorf("check ledger state: %w", err)
	}
	if len(existing) > 0 {
		u.logger.Info("ledger already populated, skipping opening entries",
			zap.Int("entries", len(existing)))
		return nil
	}

	// Opening cash arrives as a sale with no item attached: revenue in,
	// no stock movement.
	if _, err := u.ledgerRepo.Append(ctx, ledger.AppendInput{
		Kind:  model.KindSale,
		Price: u.params.OpeningCash,
		Date:  u.params.OpeningDate,
	}); err != nil {
		return fmt.Errorf("record opening cash: %w", err)
	}

	for _, rec := range records {
		name := rec.ItemName
		units := rec.CurrentStock
		cost := rec.UnitPrice.Mul(decimal.NewFromInt(rec.CurrentStock))
		if _, err := u.ledgerRepo.Append(ctx, ledger.AppendInput{
			ItemName: &name,
			Kind:     model.KindStockOrder,
			Units:    &units,
			Price:    cost,
			Date:     u.params.OpeningDate,
		}); err != nil {
			return fmt.Errorf("record opening stock for %s: %w", rec.ItemName, err)
		}
	}

	u.logger.Info("seeded opening ledger position",
		zap.Int("catalog_items", len(items)),
		zap.Int("stocked_items", len(records)),
		zap.String("opening_cash", u.params.OpeningCash.String()))
	return nil
}

func (u *catalogUC) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	return u.catalogRepo.ListItems(ctx)
}

func (u *catalogUC) GetItem(ctx context.Context, name string) (*model.CatalogItem, error) {
	return u.catalogRepo.GetItem(ctx, name)
}

func (u *catalogUC) ListInventoryRecords(ctx context.Context) ([]model.InventoryRecord, error) {
	return u.catalogRepo.ListInventoryRecords(ctx)
}
