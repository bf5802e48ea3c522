package usecase

import (
	"context"
	"time"

	"github.com/beaverschoice/supply-service/internal/catalog"
	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/supply"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// minReorderUnits is the floor on any supplier order.
const minReorderUnits = 500

type supplyUC struct {
	ledgerRepo  ledger.Repository
	catalogRepo catalog.Repository
	logger      *zap.Logger
}

func NewSupplyUsecase(ledgerRepo ledger.Repository, catalogRepo catalog.Repository, logger *zap.Logger) supply.Usecase {
	return &supplyUC{
		ledgerRepo:  ledgerRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (u *supplyUC) Assess(ctx context.Context, itemName string, quantityNeeded int64, date time.Time) (model.ReorderDecision, error) {
	stock, err := u.ledgerRepo.StockAsOf(ctx, itemName, date)
	if err != nil {
		return model.ReorderDecision{}, err
	}

	decision := model.ReorderDecision{
		ItemName:       itemName,
		CurrentStock:   stock,
		QuantityNeeded: quantityNeeded,
	}
	if stock >= quantityNeeded {
		return decision, nil
	}

	reorderQty := quantityNeeded - stock
	if reorderQty < minReorderUnits {
		reorderQty = minReorderUnits
	}

	decision.NeedsReorder = true
	decision.ReorderQuantity = reorderQty
	decision.DeliveryDate = supply.DeliveryDate(date, reorderQty)

	item, err := u.catalogRepo.GetItem(ctx, itemName)
	if err != nil {
		return model.ReorderDecision{}, err
	}
	if item != nil {
		decision.EstimatedCost = item.UnitPrice.Mul(decimal.NewFromInt(reorderQty))
	} else {
		u.logger.Warn("reorder for item not in catalog, costing at zero",
			zap.String("item", itemName))
		decision.EstimatedCost = decimal.Zero
	}
	return decision, nil
}

func (u *supplyUC) Execute(ctx context.Context, itemName string, quantityNeeded int64, date time.Time) (supply.ExecutionResult, error) {
	decision, err := u.Assess(ctx, itemName, quantityNeeded, date)
	if err != nil {
		return supply.ExecutionResult{}, err
	}
	if !decision.NeedsReorder {
		return supply.ExecutionResult{Decision: decision}, nil
	}

	name := itemName
	units := decision.ReorderQuantity
	entryID, err := u.ledgerRepo.Append(ctx, ledger.AppendInput{
		ItemName: &name,
		Kind:     model.KindStockOrder,
		Units:    &units,
		Price:    decision.EstimatedCost,
		Date:     date,
	})
	if err != nil {
		return supply.ExecutionResult{}, err
	}

	u.logger.Info("stock order committed",
		zap.String("item", itemName),
		zap.Int64("units", units),
		zap.String("cost", decision.EstimatedCost.String()),
		zap.Int64("entry_id", entryID))

	return supply.ExecutionResult{Decision: decision, Ordered: true, EntryID: entryID}, nil
}
