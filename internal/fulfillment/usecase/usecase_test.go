package usecase

import (
	"context"
	"testing"
	"time"

	catalogRepoPkg "github.com/beaverschoice/supply-service/internal/catalog/repository"
	"github.com/beaverschoice/supply-service/internal/fulfillment"
	"github.com/beaverschoice/supply-service/internal/fulfillment/dto"
	"github.com/beaverschoice/supply-service/internal/ledger"
	ledgerRepoPkg "github.com/beaverschoice/supply-service/internal/ledger/repository"
	"github.com/beaverschoice/supply-service/internal/lock"
	"github.com/beaverschoice/supply-service/internal/model"
	quotingRepoPkg "github.com/beaverschoice/supply-service/internal/quoting/repository"
	quotingUCPkg "github.com/beaverschoice/supply-service/internal/quoting/usecase"
	supplyUCPkg "github.com/beaverschoice/supply-service/internal/supply/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

func newOrchestratorFixture(t *testing.T) (fulfillment.Usecase, ledger.Repository) {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ledgerRepo := ledgerRepoPkg.NewSQLiteRepository(db)
	catalogRepo := catalogRepoPkg.NewSQLiteRepository(db)
	history := quotingRepoPkg.NewSQLiteHistory(db)
	ctx := context.Background()
	require.NoError(t, ledgerRepo.EnsureSchema(ctx))
	require.NoError(t, catalogRepo.EnsureSchema(ctx))
	require.NoError(t, history.EnsureSchema(ctx))

	require.NoError(t, catalogRepo.ReplaceCatalog(ctx, []model.CatalogItem{
		{Name: "A4 paper", Category: "paper", UnitPrice: decimal.RequireFromString("0.05")},
		{Name: "Cardstock", Category: "paper", UnitPrice: decimal.RequireFromString("0.15")},
	}))

	logger := zap.NewNop()
	quotingUC := quotingUCPkg.NewQuotingUsecase(catalogRepo, history, logger)
	supplyUC := supplyUCPkg.NewSupplyUsecase(ledgerRepo, catalogRepo, logger)
	uc := NewFulfillmentUsecase(ledgerRepo, quotingUC, supplyUC, lock.NewLocalLocker(), logger)
	return uc, ledgerRepo
}

func stockUp(t *testing.T, repo ledger.Repository, item string, units int64, price string, date time.Time) {
	t.Helper()
	_, err := repo.Append(context.Background(), ledger.AppendInput{
		ItemName: &item,
		Kind:     model.KindStockOrder,
		Units:    &units,
		Price:    decimal.RequireFromString(price),
		Date:     date,
	})
	require.NoError(t, err)
}

func TestProcessConfirmedOrder(t *testing.T) {
	uc, ledgerRepo := newOrchestratorFixture(t)
	ctx := context.Background()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	stockUp(t, ledgerRepo, "A4 paper", 800, "40.00", jan1)

	result, err := uc.Process(ctx, dto.OrderRequest{
		RequestID:   "req-1",
		Lines:       []model.OrderLineItem{{ItemName: "A4 paper", Quantity: 500}},
		OrderSize:   model.SizeMedium,
		RequestDate: "2025-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusConfirmed, result.Status)
	assert.False(t, result.DateSubstituted)
	require.Len(t, result.EntryIDs, 1)
	assert.True(t, result.TotalRevenue.Equal(decimal.RequireFromString("24.25")))
	assert.Contains(t, result.Message, "Total cost: $24.25")
	// 500 units is the 101-1000 delivery tier
	assert.Equal(t, jan1.AddDate(0, 0, 4), result.EstimatedDelivery)

	stock, err := ledgerRepo.StockAsOf(ctx, "A4 paper", jan1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(300), stock)
}

func TestProcessPartialOrder(t *testing.T) {
	uc, ledgerRepo := newOrchestratorFixture(t)
	ctx := context.Background()
	mar1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	stockUp(t, ledgerRepo, "A4 paper", 100, "5.00", mar1.AddDate(0, 0, -1))

	result, err := uc.Process(ctx, dto.OrderRequest{
		RequestID: "req-2",
		Lines: []model.OrderLineItem{
			{ItemName: "A4 paper", Quantity: 50},
			{ItemName: "Cardstock", Quantity: 20},
		},
		RequestDate: "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusPartial, result.Status)
	require.NotNil(t, result.PartialQuote)
	assert.Equal(t, model.SizeSmall, result.PartialQuote.OrderSize,
		"partial re-quote is classified small regardless of the original order")
	require.Len(t, result.PartialQuote.Lines, 1)
	assert.Equal(t, "A4 paper", result.PartialQuote.Lines[0].ItemName)

	// the partial quote is an offer: no sale is committed
	stock, err := ledgerRepo.StockAsOf(ctx, "A4 paper", mar1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(100), stock)

	// the infeasible line triggers a reorder at the 500-unit floor
	require.Len(t, result.Reorders, 1)
	assert.Equal(t, "Cardstock", result.Reorders[0].ItemName)
	assert.GreaterOrEqual(t, result.Reorders[0].ReorderQuantity, int64(500))
	require.Len(t, result.ReorderEntryIDs, 1)

	cardstock, err := ledgerRepo.StockAsOf(ctx, "Cardstock", mar1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), cardstock)
}

func TestProcessNothingFeasible(t *testing.T) {
	uc, ledgerRepo := newOrchestratorFixture(t)
	ctx := context.Background()

	result, err := uc.Process(ctx, dto.OrderRequest{
		RequestID:   "req-3",
		Lines:       []model.OrderLineItem{{ItemName: "A4 paper", Quantity: 10}},
		RequestDate: "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusUnavailable, result.Status)
	entries, err := ledgerRepo.Query(ctx, ledger.Filter{Until: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, entries, "the unavailable branch commits nothing")
}

func TestProcessEmptyOrder(t *testing.T) {
	uc, ledgerRepo := newOrchestratorFixture(t)
	ctx := context.Background()

	result, err := uc.Process(ctx, dto.OrderRequest{RequestID: "req-4"})
	require.NoError(t, err)

	assert.Equal(t, dto.StatusClarificationNeeded, result.Status)
	assert.Contains(t, result.Message, "couldn't identify specific paper products")

	entries, err := ledgerRepo.Query(ctx, ledger.Filter{Until: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessMalformedDateSubstituted(t *testing.T) {
	uc, ledgerRepo := newOrchestratorFixture(t)
	ctx := context.Background()

	stockUp(t, ledgerRepo, "A4 paper", 100, "5.00", time.Now().AddDate(0, 0, -1))

	result, err := uc.Process(ctx, dto.OrderRequest{
		RequestID:   "req-5",
		Lines:       []model.OrderLineItem{{ItemName: "A4 paper", Quantity: 10}},
		RequestDate: "not-a-date",
	})
	require.NoError(t, err)

	assert.True(t, result.DateSubstituted, "malformed dates fall back to now with a warning flag")
	assert.Equal(t, dto.StatusConfirmed, result.Status)
}
