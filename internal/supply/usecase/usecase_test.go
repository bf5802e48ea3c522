package usecase

import (
	"context"
	"testing"
	"time"

	catalogRepoPkg "github.com/beaverschoice/supply-service/internal/catalog/repository"
	"github.com/beaverschoice/supply-service/internal/ledger"
	ledgerRepoPkg "github.com/beaverschoice/supply-service/internal/ledger/repository"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/supply"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

func newPlannerFixture(t *testing.T) (supply.Usecase, ledger.Repository) {
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

	require.NoError(t, catalogRepo.ReplaceCatalog(ctx, []model.CatalogItem{
		{Name: "A4 paper", Category: "paper", UnitPrice: decimal.RequireFromString("0.05")},
	}))

	return NewSupplyUsecase(ledgerRepo, catalogRepo, zap.NewNop()), ledgerRepo
}

func TestAssessReorderFloor(t *testing.T) {
	uc, _ := newPlannerFixture(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	decision, err := uc.Assess(ctx, "A4 paper", 10, date)
	require.NoError(t, err)
	require.True(t, decision.NeedsReorder)
	assert.Equal(t, int64(0), decision.CurrentStock)
	assert.Equal(t, int64(500), decision.ReorderQuantity, "never order less than 500 units")
	assert.True(t, decision.EstimatedCost.Equal(decimal.RequireFromString("25.00")))
	// 500 units fall in the 101-1000 tier
	assert.Equal(t, date.AddDate(0, 0, 4), decision.DeliveryDate)
}

func TestAssessNoReorderNeeded(t *testing.T) {
	uc, ledgerRepo := newPlannerFixture(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	item := "A4 paper"
	units := int64(800)
	_, err := ledgerRepo.Append(ctx, ledger.AppendInput{
		ItemName: &item, Kind: model.KindStockOrder, Units: &units,
		Price: decimal.RequireFromString("40.00"), Date: date.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	decision, err := uc.Assess(ctx, "A4 paper", 500, date)
	require.NoError(t, err)
	assert.False(t, decision.NeedsReorder)
	assert.Equal(t, int64(800), decision.CurrentStock)
	assert.Equal(t, int64(500), decision.QuantityNeeded, "no-reorder decisions still report the request")
}

func TestAssessUnknownItemZeroCost(t *testing.T) {
	uc, _ := newPlannerFixture(t)
	ctx := context.Background()

	decision, err := uc.Assess(ctx, "Quantum paper", 1200, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, decision.NeedsReorder)
	assert.Equal(t, int64(1200), decision.ReorderQuantity)
	assert.True(t, decision.EstimatedCost.IsZero(), "items missing from the catalog cost zero")
}

func TestExecuteCommitsStockOrder(t *testing.T) {
	uc, ledgerRepo := newPlannerFixture(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := uc.Execute(ctx, "A4 paper", 10, date)
	require.NoError(t, err)
	require.True(t, result.Ordered)
	require.NotZero(t, result.EntryID)

	stock, err := ledgerRepo.StockAsOf(ctx, "A4 paper", date)
	require.NoError(t, err)
	assert.Equal(t, int64(500), stock)

	// plenty in stock now; a second execution must not write
	result, err = uc.Execute(ctx, "A4 paper", 10, date)
	require.NoError(t, err)
	assert.False(t, result.Ordered)

	entries, err := ledgerRepo.Query(ctx, ledger.Filter{Until: date.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
