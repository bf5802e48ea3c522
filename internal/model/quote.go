package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest is an archived customer inquiry. Historical, read-only.
type QuoteRequest struct {
	ID       int64  `db:"id" json:"id"`
	Response string `db:"response" json:"response"`
}

// Quote is an archived quote issued for a past request. Historical, read-only.
type Quote struct {
	RequestID   int64           `db:"request_id" json:"request_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Explanation string          `db:"explanation" json:"explanation"`
	OrderDate   time.Time       `json:"order_date"`
	JobType     string          `db:"job_type" json:"job_type"`
	OrderSize   string          `db:"order_size" json:"order_size"`
	EventType   string          `db:"event_type" json:"event_type"`
}

// HistoricalQuote is a quote joined with its originating request, as returned
// by history search.
type HistoricalQuote struct {
	OriginalRequest string          `json:"original_request"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Explanation     string          `json:"quote_explanation"`
	JobType         string          `json:"job_type"`
	OrderSize       string          `json:"order_size"`
	EventType       string          `json:"event_type"`
	OrderDate       time.Time       `json:"order_date"`
}
