package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beaverschoice/supply-service/internal/dates"
	"github.com/beaverschoice/supply-service/internal/fulfillment"
	"github.com/beaverschoice/supply-service/internal/fulfillment/dto"
	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/lock"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/quoting"
	"github.com/beaverschoice/supply-service/internal/supply"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	orderLockKey     = "lock:ledger:orders"
	orderLockTTL     = 10 * time.Second
	lockRetries      = 3
	lockRetryBackoff = 100 * time.Millisecond
)

const clarificationMessage = "I apologize, but I couldn't identify specific paper products in your request. " +
	"Please specify the items and quantities you need."

type orchestrator struct {
	ledgerRepo ledger.Repository
	quotingUC  quoting.Usecase
	supplyUC   supply.Usecase
	locker     lock.Locker
	logger     *zap.Logger
}

func NewFulfillmentUsecase(ledgerRepo ledger.Repository, quotingUC quoting.Usecase, supplyUC supply.Usecase, locker lock.Locker, logger *zap.Logger) fulfillment.Usecase {
	return &orchestrator{
		ledgerRepo: ledgerRepo,
		quotingUC:  quotingUC,
		supplyUC:   supplyUC,
		locker:     locker,
		logger:     logger,
	}
}

func (o *orchestrator) Process(ctx context.Context, req dto.OrderRequest) (dto.OrderResult, error) {
	if len(req.Lines) == 0 {
		return dto.OrderResult{
			Status:  dto.StatusClarificationNeeded,
			Message: clarificationMessage,
		}, nil
	}

	date, substituted := dates.CutoffOrNow(req.RequestDate)
	if substituted {
		o.logger.Warn("unparseable request date, using current date",
			zap.String("request_id", req.RequestID),
			zap.String("raw_date", req.RequestDate))
	}

	size := req.OrderSize
	if size == "" {
		var totalUnits int64
		for _, line := range req.Lines {
			totalUnits += line.Quantity
		}
		size = model.ClassifyOrderSize(totalUnits)
	}

	release, err := o.acquireLock(ctx)
	if err != nil {
		return dto.OrderResult{}, err
	}
	defer release()

	feasibility := make([]dto.LineAvailability, 0, len(req.Lines))
	allFeasible := true
	anyFeasible := false
	for _, line := range req.Lines {
		stock, err := o.ledgerRepo.StockAsOf(ctx, line.ItemName, date)
		if err != nil {
			return dto.OrderResult{}, err
		}
		feasible := stock >= line.Quantity
		allFeasible = allFeasible && feasible
		anyFeasible = anyFeasible || feasible
		feasibility = append(feasibility, dto.LineAvailability{
			ItemName:  line.ItemName,
			Requested: line.Quantity,
			Available: stock,
			Feasible:  feasible,
		})
	}

	quote, err := o.quotingUC.Price(ctx, req.Lines, size)
	if err != nil {
		return dto.OrderResult{}, err
	}

	result := dto.OrderResult{
		Feasibility:     feasibility,
		Quote:           &quote,
		DateSubstituted: substituted,
	}

	switch {
	case allFeasible:
		err = o.confirm(ctx, req, quote, date, &result)
	case anyFeasible:
		err = o.partial(ctx, req, feasibility, date, &result)
	default:
		result.Status = dto.StatusUnavailable
		result.Message = "Unfortunately, none of the requested items are currently in stock. No charges have been made."
	}
	if err != nil {
		return dto.OrderResult{}, err
	}
	return result, nil
}

// confirm commits one sale entry per priced line and estimates delivery from
// the slowest line.
func (o *orchestrator) confirm(ctx context.Context, req dto.OrderRequest, quote model.PricedOrder, date time.Time, result *dto.OrderResult) error {
	saleLines := make([]ledger.SaleLine, 0, len(quote.Lines))
	maxLead := 0
	for _, line := range quote.Lines {
		saleLines = append(saleLines, ledger.SaleLine{
			ItemName: line.ItemName,
			Units:    line.Quantity,
			Price:    line.FinalPrice,
		})
		if lead := supply.LeadTimeDays(line.Quantity); lead > maxLead {
			maxLead = lead
		}
	}

	ids, err := o.ledgerRepo.CommitSale(ctx, saleLines, date)
	if err != nil {
		return fmt.Errorf("commit sale for request %s: %w", req.RequestID, err)
	}

	result.Status = dto.StatusConfirmed
	result.Message = quote.Explanation
	result.TotalRevenue = quote.Total
	result.EntryIDs = ids
	result.EstimatedDelivery = date.AddDate(0, 0, maxLead)

	o.archive(ctx, req, quote, date)

	o.logger.Info("order confirmed",
		zap.String("request_id", req.RequestID),
		zap.Int("lines", len(saleLines)),
		zap.String("revenue", quote.Total.String()))
	return nil
}

// partial re-quotes the feasible subset as a standalone small order and runs
// the reorder planner for every infeasible line. The partial quote is an
// offer only; nothing is committed for it.
func (o *orchestrator) partial(ctx context.Context, req dto.OrderRequest, feasibility []dto.LineAvailability, date time.Time, result *dto.OrderResult) error {
	feasibleByName := make(map[string]bool, len(feasibility))
	for _, f := range feasibility {
		feasibleByName[f.ItemName] = f.Feasible
	}

	var feasibleLines, infeasibleLines []model.OrderLineItem
	for _, line := range req.Lines {
		if feasibleByName[line.ItemName] {
			feasibleLines = append(feasibleLines, line)
		} else {
			infeasibleLines = append(infeasibleLines, line)
		}
	}

	partialQuote, err := o.quotingUC.Price(ctx, feasibleLines, model.SizeSmall)
	if err != nil {
		return err
	}

	var restockNotes []string
	for _, line := range infeasibleLines {
		exec, err := o.supplyUC.Execute(ctx, line.ItemName, line.Quantity, date)
		if err != nil {
			return err
		}
		result.Reorders = append(result.Reorders, exec.Decision)
		if exec.Ordered {
			result.ReorderEntryIDs = append(result.ReorderEntryIDs, exec.EntryID)
			restockNotes = append(restockNotes, fmt.Sprintf("%s expected back in stock on %s",
				line.ItemName, dates.Day(exec.Decision.DeliveryDate)))
		}
	}

	result.Status = dto.StatusPartial
	result.PartialQuote = &partialQuote
	msg := "We can fulfill part of your order right away. " + partialQuote.Explanation
	if len(restockNotes) > 0 {
		msg += " For the remaining items: " + strings.Join(restockNotes, "; ") + "."
	}
	result.Message = msg

	o.archive(ctx, req, partialQuote, date)

	o.logger.Info("order partially feasible",
		zap.String("request_id", req.RequestID),
		zap.Int("feasible_lines", len(feasibleLines)),
		zap.Int("reorders", len(result.ReorderEntryIDs)))
	return nil
}

// archive stores the issued quote against the raw request text when the
// caller supplied one. Archive failures are logged, not fatal: the sale has
// already been resolved.
func (o *orchestrator) archive(ctx context.Context, req dto.OrderRequest, quote model.PricedOrder, date time.Time) {
	if req.RequestText == "" {
		return
	}
	if _, err := o.quotingUC.Archive(ctx, req.RequestText, quote, date, "", ""); err != nil {
		o.logger.Error("failed to archive quote",
			zap.String("request_id", req.RequestID), zap.Error(err))
	}
}

func (o *orchestrator) acquireLock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	for attempt := 0; attempt < lockRetries; attempt++ {
		ok, err := o.locker.Acquire(ctx, orderLockKey, token, orderLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire order lock: %w", err)
		}
		if ok {
			return func() {
				if err := o.locker.Release(context.WithoutCancel(ctx), orderLockKey, token); err != nil {
					o.logger.Warn("failed to release order lock", zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryBackoff):
		}
	}
	return nil, fmt.Errorf("order lock held by another request")
}
