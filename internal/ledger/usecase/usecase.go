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

type ledgerUC struct {
	ledgerRepo  ledger.Repository
	catalogRepo catalog.Repository
	logger      *zap.Logger
}

func NewLedgerUsecase(ledgerRepo ledger.Repository, catalogRepo catalog.Repository, logger *zap.Logger) ledger.Usecase {
	return &ledgerUC{
		ledgerRepo:  ledgerRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (u *ledgerUC) Append(ctx context.Context, input ledger.AppendInput) (int64, error) {
	id, err := u.ledgerRepo.Append(ctx, input)
	if err != nil {
		return 0, err
	}
	u.logger.Debug("ledger entry appended",
		zap.Int64("id", id),
		zap.String("kind", string(input.Kind)),
		zap.String("price", input.Price.String()))
	return id, nil
}

func (u *ledgerUC) Entries(ctx context.Context, f ledger.Filter) ([]model.LedgerEntry, error) {
	return u.ledgerRepo.Query(ctx, f)
}

func (u *ledgerUC) StockAsOf(ctx context.Context, itemName string, until time.Time) (int64, error) {
	return u.ledgerRepo.StockAsOf(ctx, itemName, until)
}

func (u *ledgerUC) StockStatus(ctx context.Context, itemName string, until time.Time) (ledger.StockStatus, error) {
	stock, err := u.ledgerRepo.StockAsOf(ctx, itemName, until)
	if err != nil {
		return ledger.StockStatus{}, err
	}

	status := ledger.StockStatus{
		ItemName: itemName,
		Stock:    stock,
		InStock:  stock > 0,
	}

	item, err := u.catalogRepo.GetItem(ctx, itemName)
	if err != nil {
		return ledger.StockStatus{}, err
	}
	if item != nil {
		price := item.UnitPrice
		status.UnitPrice = &price
		status.Category = item.Category
	}
	return status, nil
}

func (u *ledgerUC) AllStockAsOf(ctx context.Context, until time.Time) (map[string]int64, error) {
	return u.ledgerRepo.AllStockAsOf(ctx, until)
}

func (u *ledgerUC) CashBalanceAsOf(ctx context.Context, until time.Time) (decimal.Decimal, error) {
	entries, err := u.ledgerRepo.Query(ctx, ledger.Filter{Until: until})
	if err != nil {
		return decimal.Zero, fmt.Errorf("load entries for cash balance: %w", err)
	}

	balance := decimal.Zero
	for _, e := range entries {
		switch e.Kind {
		case model.KindSale:
			balance = balance.Add(e.Price)
		case model.KindStockOrder:
			balance = balance.Sub(e.Price)
		}
	}
	return balance, nil
}

func (u *ledgerUC) InventoryValuation(ctx context.Context, until time.Time) ([]model.ItemValuation, decimal.Decimal, error) {
	records, err := u.catalogRepo.ListInventoryRecords(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("load inventory records for valuation: %w", err)
	}

	total := decimal.Zero
	valuations := make([]model.ItemValuation, 0, len(records))
	for _, rec := range records {
		stock, err := u.ledgerRepo.StockAsOf(ctx, rec.ItemName, until)
		if err != nil {
			return nil, decimal.Zero, err
		}
		value := rec.UnitPrice.Mul(decimal.NewFromInt(stock))
		total = total.Add(value)
		valuations = append(valuations, model.ItemValuation{
			ItemName:  rec.ItemName,
			Stock:     stock,
			UnitPrice: rec.UnitPrice,
			Value:     value,
		})
	}
	return valuations, total, nil
}

func (u *ledgerUC) NegativeStockAsOf(ctx context.Context, until time.Time) ([]model.StockAnomaly, error) {
	anomalies, err := u.ledgerRepo.NegativeStockAsOf(ctx, until)
	if err != nil {
		return nil, err
	}
	if len(anomalies) > 0 {
		u.logger.Warn("negative stock detected", zap.Int("items", len(anomalies)))
	}
	return anomalies, nil
}
