package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beaverschoice/supply-service/internal/catalog"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/quoting"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// bulkDiscountThreshold is the order total above which the quote explanation
// calls out the applied discounts.
var bulkDiscountThreshold = decimal.NewFromInt(500)

type quotingUC struct {
	catalogRepo catalog.Repository
	history     quoting.History
	logger      *zap.Logger
}

func NewQuotingUsecase(catalogRepo catalog.Repository, history quoting.History, logger *zap.Logger) quoting.Usecase {
	return &quotingUC{
		catalogRepo: catalogRepo,
		history:     history,
		logger:      logger,
	}
}

// discountRate implements the bulk discount table: the rate depends on the
// overall order size class and the quantity of the individual line.
func discountRate(size model.OrderSize, quantity int64) decimal.Decimal {
	switch size {
	case model.SizeLarge:
		if quantity > 1000 {
			return decimal.NewFromFloat(0.15)
		}
		return decimal.NewFromFloat(0.10)
	case model.SizeMedium:
		if quantity > 500 {
			return decimal.NewFromFloat(0.05)
		}
		return decimal.NewFromFloat(0.03)
	default:
		if quantity > 100 {
			return decimal.NewFromFloat(0.02)
		}
		return decimal.Zero
	}
}

func (u *quotingUC) Price(ctx context.Context, lines []model.OrderLineItem, size model.OrderSize) (model.PricedOrder, error) {
	order := model.PricedOrder{
		Total:     decimal.Zero,
		OrderSize: size,
	}

	for _, line := range lines {
		item, err := u.catalogRepo.GetItem(ctx, line.ItemName)
		if err != nil {
			return model.PricedOrder{}, err
		}
		if item == nil {
			u.logger.Debug("skipping unknown item in quote", zap.String("item", line.ItemName))
			continue
		}

		qty := decimal.NewFromInt(line.Quantity)
		subtotal := item.UnitPrice.Mul(qty)
		rate := discountRate(size, line.Quantity)
		discount := subtotal.Mul(rate)
		finalPrice := subtotal.Sub(discount)

		order.Lines = append(order.Lines, model.PricedLine{
			ItemName:     line.ItemName,
			Quantity:     line.Quantity,
			UnitPrice:    item.UnitPrice,
			Subtotal:     subtotal,
			DiscountRate: rate,
			Discount:     discount,
			FinalPrice:   finalPrice,
		})
		order.Total = order.Total.Add(finalPrice)
	}

	order.Explanation = explain(order)
	return order, nil
}

func explain(order model.PricedOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your %s order request! ", order.OrderSize)
	if order.Total.GreaterThan(bulkDiscountThreshold) {
		b.WriteString("We've applied bulk discounts to provide you with the best value. ")
	}

	b.WriteString("Your order includes: ")
	parts := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		part := fmt.Sprintf("%d %s at $%s each", line.Quantity, line.ItemName, line.UnitPrice.StringFixed(2))
		if line.DiscountRate.IsPositive() {
			part += fmt.Sprintf(" (with %s%% bulk discount)", line.DiscountRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
		}
		parts = append(parts, part)
	}
	b.WriteString(strings.Join(parts, ", "))
	fmt.Fprintf(&b, ". Total cost: $%s", order.Total.StringFixed(2))
	return b.String()
}

func (u *quotingUC) Archive(ctx context.Context, request string, order model.PricedOrder, orderDate time.Time, jobType, eventType string) (int64, error) {
	requestID, err := u.history.SaveRequest(ctx, request)
	if err != nil {
		return 0, err
	}

	err = u.history.SaveQuote(ctx, model.Quote{
		RequestID:   requestID,
		TotalAmount: order.Total,
		Explanation: order.Explanation,
		OrderDate:   orderDate,
		JobType:     jobType,
		OrderSize:   string(order.OrderSize),
		EventType:   eventType,
	})
	if err != nil {
		return 0, err
	}
	return requestID, nil
}

func (u *quotingUC) SearchHistory(ctx context.Context, terms []string, limit int) ([]model.HistoricalQuote, error) {
	return u.history.Search(ctx, terms, limit)
}
