package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/beaverschoice/supply-service/internal/fulfillment"
	"github.com/beaverschoice/supply-service/internal/fulfillment/dto"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type OrderListener struct {
	reader *kafka.Reader
	uc     fulfillment.Usecase
	logger *zap.Logger
}

func NewOrderListener(reader *kafka.Reader, uc fulfillment.Usecase, logger *zap.Logger) *OrderListener {
	return &OrderListener{
		reader: reader,
		uc:     uc,
		logger: logger,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderRequestedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	RequestID   string             `json:"request_id"`
	RequestText string             `json:"request_text"`
	Items       []OrderItemPayload `json:"items"`
	OrderSize   string             `json:"order_size"`
	RequestDate string             `json:"request_date"`
}

type OrderItemPayload struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderRequested" {
		return
	}

	l.logger.Info("processing OrderRequested event",
		zap.String("request_id", event.Payload.RequestID))

	req := dto.OrderRequest{
		RequestID:   event.Payload.RequestID,
		RequestText: event.Payload.RequestText,
		OrderSize:   model.OrderSize(event.Payload.OrderSize),
		RequestDate: event.Payload.RequestDate,
	}
	for _, item := range event.Payload.Items {
		req.Lines = append(req.Lines, model.OrderLineItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}

	result, err := l.uc.Process(ctx, req)
	if err != nil {
		l.logger.Error("failed to process order event",
			zap.String("request_id", event.Payload.RequestID),
			zap.Error(err))
		return
	}

	l.logger.Info("order event processed",
		zap.String("request_id", event.Payload.RequestID),
		zap.String("status", result.Status))
}
