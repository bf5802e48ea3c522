package finance

import (
	"context"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
)

// Usecase assembles point-in-time financial snapshots. Read-only.
type Usecase interface {
	Report(ctx context.Context, asOf time.Time) (model.FinancialReport, error)
	TopSellers(ctx context.Context, asOf time.Time, limit int) ([]model.TopSeller, error)
}
