package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/quoting"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

const schema = `
CREATE TABLE IF NOT EXISTS quote_requests (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	response TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quotes (
	request_id   INTEGER NOT NULL REFERENCES quote_requests(id),
	total_amount TEXT NOT NULL,
	explanation  TEXT NOT NULL,
	order_date   TEXT NOT NULL,
	job_type     TEXT NOT NULL DEFAULT '',
	order_size   TEXT NOT NULL DEFAULT '',
	event_type   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_quotes_order_date ON quotes(order_date);
`

type SQLiteHistory struct {
	db *sqlx.DB
}

func NewSQLiteHistory(db *sqlx.DB) *SQLiteHistory {
	return &SQLiteHistory{db: db}
}

func (r *SQLiteHistory) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate quote history schema: %w", err)
	}
	return nil
}

func (r *SQLiteHistory) SaveRequest(ctx context.Context, response string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO quote_requests (response) VALUES (?)", response)
	if err != nil {
		return 0, fmt.Errorf("insert quote request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted request id: %w", err)
	}
	return id, nil
}

func (r *SQLiteHistory) SaveQuote(ctx context.Context, q model.Quote) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO quotes (request_id, total_amount, explanation, order_date, job_type, order_size, event_type)
		VALUES (:request_id, :total_amount, :explanation, :order_date, :job_type, :order_size, :event_type)`,
		map[string]interface{}{
			"request_id":   q.RequestID,
			"total_amount": q.TotalAmount.String(),
			"explanation":  q.Explanation,
			"order_date":   q.OrderDate.UTC().Format(timeLayout),
			"job_type":     q.JobType,
			"order_size":   q.OrderSize,
			"event_type":   q.EventType,
		})
	if err != nil {
		return fmt.Errorf("insert quote for request %d: %w", q.RequestID, err)
	}
	return nil
}

func (r *SQLiteHistory) Search(ctx context.Context, terms []string, limit int) ([]model.HistoricalQuote, error) {
	if limit <= 0 {
		limit = quoting.DefaultSearchLimit
	}

	conditions := []string{"1=1"}
	args := map[string]interface{}{"limit": limit}
	for i, term := range terms {
		param := fmt.Sprintf("term_%d", i)
		conditions = append(conditions,
			fmt.Sprintf("(LOWER(qr.response) LIKE :%s OR LOWER(q.explanation) LIKE :%s)", param, param))
		args[param] = "%" + strings.ToLower(term) + "%"
	}

	query := `
		SELECT
			qr.response AS original_request,
			q.total_amount,
			q.explanation,
			q.job_type,
			q.order_size,
			q.event_type,
			q.order_date
		FROM quotes q
		JOIN quote_requests qr ON q.request_id = qr.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY q.order_date DESC
		LIMIT :limit`

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("search quote history: %w", err)
	}
	defer rows.Close()

	var results []model.HistoricalQuote
	for rows.Next() {
		var row struct {
			OriginalRequest string `db:"original_request"`
			TotalAmount     string `db:"total_amount"`
			Explanation     string `db:"explanation"`
			JobType         string `db:"job_type"`
			OrderSize       string `db:"order_size"`
			EventType       string `db:"event_type"`
			OrderDate       string `db:"order_date"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan historical quote: %w", err)
		}

		amount, err := decimal.NewFromString(row.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("historical quote: parse amount %q: %w", row.TotalAmount, err)
		}
		orderDate, err := time.Parse(timeLayout, row.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("historical quote: parse date %q: %w", row.OrderDate, err)
		}

		results = append(results, model.HistoricalQuote{
			OriginalRequest: row.OriginalRequest,
			TotalAmount:     amount,
			Explanation:     row.Explanation,
			JobType:         row.JobType,
			OrderSize:       row.OrderSize,
			EventType:       row.EventType,
			OrderDate:       orderDate,
		})
	}
	return results, rows.Err()
}
