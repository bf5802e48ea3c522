package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/beaverschoice/supply-service/internal/finance"
	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/model"
	"go.uber.org/zap"
)

// topSellerLimit is how many products the report ranks by revenue.
const topSellerLimit = 5

type financeUC struct {
	ledgerUC ledger.Usecase
	logger   *zap.Logger
}

func NewFinanceUsecase(ledgerUC ledger.Usecase, logger *zap.Logger) finance.Usecase {
	return &financeUC{
		ledgerUC: ledgerUC,
		logger:   logger,
	}
}

func (u *financeUC) Report(ctx context.Context, asOf time.Time) (model.FinancialReport, error) {
	cash, err := u.ledgerUC.CashBalanceAsOf(ctx, asOf)
	if err != nil {
		return model.FinancialReport{}, err
	}

	valuations, inventoryValue, err := u.ledgerUC.InventoryValuation(ctx, asOf)
	if err != nil {
		return model.FinancialReport{}, err
	}

	topSellers, err := u.TopSellers(ctx, asOf, topSellerLimit)
	if err != nil {
		return model.FinancialReport{}, err
	}

	anomalies, err := u.ledgerUC.NegativeStockAsOf(ctx, asOf)
	if err != nil {
		return model.FinancialReport{}, err
	}

	report := model.FinancialReport{
		AsOf:           asOf,
		CashBalance:    cash,
		InventoryValue: inventoryValue,
		TotalAssets:    cash.Add(inventoryValue),
		Inventory:      valuations,
		TopSellers:     topSellers,
		Anomalies:      anomalies,
	}

	u.logger.Debug("financial report assembled",
		zap.Time("as_of", asOf),
		zap.String("cash", cash.String()),
		zap.String("inventory_value", inventoryValue.String()))
	return report, nil
}

// TopSellers ranks items by cumulative sale revenue up to the cutoff. Pure
// cash entries carry no item and are excluded. Ties keep the order in which
// items first appear in the ledger.
func (u *financeUC) TopSellers(ctx context.Context, asOf time.Time, limit int) ([]model.TopSeller, error) {
	kind := model.KindSale
	entries, err := u.ledgerUC.Entries(ctx, ledger.Filter{Kind: &kind, Until: asOf})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var sellers []model.TopSeller
	for _, e := range entries {
		if e.ItemName == nil {
			continue
		}
		i, ok := index[*e.ItemName]
		if !ok {
			i = len(sellers)
			index[*e.ItemName] = i
			sellers = append(sellers, model.TopSeller{ItemName: *e.ItemName})
		}
		if e.Units != nil {
			sellers[i].TotalUnits += *e.Units
		}
		sellers[i].TotalRevenue = sellers[i].TotalRevenue.Add(e.Price)
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].TotalRevenue.GreaterThan(sellers[j].TotalRevenue)
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers, nil
}
