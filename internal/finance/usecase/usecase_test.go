package usecase

import (
	"context"
	"testing"
	"time"

	catalogRepoPkg "github.com/beaverschoice/supply-service/internal/catalog/repository"
	"github.com/beaverschoice/supply-service/internal/finance"
	"github.com/beaverschoice/supply-service/internal/ledger"
	ledgerRepoPkg "github.com/beaverschoice/supply-service/internal/ledger/repository"
	ledgerUCPkg "github.com/beaverschoice/supply-service/internal/ledger/usecase"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

func newReporterFixture(t *testing.T) (finance.Usecase, ledger.Repository, *catalogRepoPkg.SQLiteRepository) {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ledgerRepo := ledgerRepoPkg.NewSQLiteRepository(db)
	catalogRepo := catalogRepoPkg.NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, ledgerRepo.EnsureSchema(ctx))
	require.NoError(t, catalogRepo.EnsureSchema(ctx))

	logger := zap.NewNop()
	ledgerUC := ledgerUCPkg.NewLedgerUsecase(ledgerRepo, catalogRepo, logger)
	return NewFinanceUsecase(ledgerUC, logger), ledgerRepo, catalogRepo
}

func mustAppend(t *testing.T, repo ledger.Repository, input ledger.AppendInput) {
	t.Helper()
	_, err := repo.Append(context.Background(), input)
	require.NoError(t, err)
}

func saleEntry(item string, units int64, price string, date time.Time) ledger.AppendInput {
	return ledger.AppendInput{
		ItemName: &item,
		Kind:     model.KindSale,
		Units:    &units,
		Price:    decimal.RequireFromString(price),
		Date:     date,
	}
}

func TestFinancialReport(t *testing.T) {
	uc, ledgerRepo, catalogRepo := newReporterFixture(t)
	ctx := context.Background()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, catalogRepo.ReplaceInventoryRecords(ctx, []model.InventoryRecord{
		{ItemName: "A4 paper", Category: "paper", UnitPrice: decimal.RequireFromString("0.05"), CurrentStock: 400, MinStockLevel: 50},
	}))

	// opening cash: a pure cash sale carrying no item
	mustAppend(t, ledgerRepo, ledger.AppendInput{
		Kind:  model.KindSale,
		Price: decimal.RequireFromString("50000.00"),
		Date:  jan1,
	})
	item := "A4 paper"
	units := int64(400)
	mustAppend(t, ledgerRepo, ledger.AppendInput{
		ItemName: &item, Kind: model.KindStockOrder, Units: &units,
		Price: decimal.RequireFromString("20.00"), Date: jan1,
	})
	mustAppend(t, ledgerRepo, saleEntry("A4 paper", 100, "5.00", jan1.AddDate(0, 0, 5)))

	report, err := uc.Report(ctx, jan1.AddDate(0, 1, 0))
	require.NoError(t, err)

	// 50000 + 5 - 20
	assert.True(t, report.CashBalance.Equal(decimal.RequireFromString("49985.00")), "cash %s", report.CashBalance)
	// 300 sheets at the 0.05 reference price
	assert.True(t, report.InventoryValue.Equal(decimal.RequireFromString("15.00")), "inventory %s", report.InventoryValue)
	assert.True(t, report.TotalAssets.Equal(report.CashBalance.Add(report.InventoryValue)))
	require.Len(t, report.Inventory, 1)
	assert.Equal(t, int64(300), report.Inventory[0].Stock)
	assert.Empty(t, report.Anomalies)

	require.Len(t, report.TopSellers, 1, "the opening cash entry is not a product sale")
	assert.Equal(t, "A4 paper", report.TopSellers[0].ItemName)
	assert.Equal(t, int64(100), report.TopSellers[0].TotalUnits)
	assert.True(t, report.TopSellers[0].TotalRevenue.Equal(decimal.RequireFromString("5.00")))
}

func TestTopSellersRankingAndTieBreak(t *testing.T) {
	uc, ledgerRepo, _ := newReporterFixture(t)
	ctx := context.Background()
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mustAppend(t, ledgerRepo, saleEntry("Cardstock", 10, "3.00", feb))
	mustAppend(t, ledgerRepo, saleEntry("A4 paper", 100, "5.00", feb))
	mustAppend(t, ledgerRepo, saleEntry("Glossy paper", 20, "5.00", feb))
	mustAppend(t, ledgerRepo, saleEntry("A4 paper", 40, "2.00", feb.AddDate(0, 0, 1)))

	sellers, err := uc.TopSellers(ctx, feb.AddDate(0, 1, 0), 2)
	require.NoError(t, err)
	require.Len(t, sellers, 2)

	assert.Equal(t, "A4 paper", sellers[0].ItemName)
	assert.True(t, sellers[0].TotalRevenue.Equal(decimal.RequireFromString("7.00")))
	assert.Equal(t, int64(140), sellers[0].TotalUnits)
	assert.Equal(t, "Glossy paper", sellers[1].ItemName)
}

func TestTopSellersTieKeepsLedgerOrder(t *testing.T) {
	uc, ledgerRepo, _ := newReporterFixture(t)
	ctx := context.Background()
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mustAppend(t, ledgerRepo, saleEntry("Cardstock", 10, "5.00", feb))
	mustAppend(t, ledgerRepo, saleEntry("A4 paper", 100, "5.00", feb))

	sellers, err := uc.TopSellers(ctx, feb.AddDate(0, 1, 0), 5)
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, "Cardstock", sellers[0].ItemName, "equal revenue keeps first-appearance order")
	assert.Equal(t, "A4 paper", sellers[1].ItemName)
}
