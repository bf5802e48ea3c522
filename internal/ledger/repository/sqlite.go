package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

// RFC3339 UTC strings compare lexicographically, so entry_date cutoffs work as
// plain TEXT comparisons.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	item_name  TEXT,
	kind       TEXT NOT NULL,
	units      INTEGER,
	price      TEXT NOT NULL,
	entry_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_item_date ON ledger_entries(item_name, entry_date);
CREATE INDEX IF NOT EXISTS idx_ledger_kind_date ON ledger_entries(kind, entry_date);
`

const stockExpr = `COALESCE(SUM(CASE
	WHEN kind = 'stock_order' THEN units
	WHEN kind = 'sale' THEN -units
	ELSE 0
END), 0)`

type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

type entryRow struct {
	ID        int64          `db:"id"`
	ItemName  sql.NullString `db:"item_name"`
	Kind      string         `db:"kind"`
	Units     sql.NullInt64  `db:"units"`
	Price     string         `db:"price"`
	EntryDate string         `db:"entry_date"`
}

func (row entryRow) toModel() (model.LedgerEntry, error) {
	e := model.LedgerEntry{
		ID:   row.ID,
		Kind: model.EntryKind(row.Kind),
	}
	if row.ItemName.Valid {
		name := row.ItemName.String
		e.ItemName = &name
	}
	if row.Units.Valid {
		units := row.Units.Int64
		e.Units = &units
	}

	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return e, fmt.Errorf("entry %d: parse price %q: %w", row.ID, row.Price, err)
	}
	e.Price = price

	date, err := time.Parse(timeLayout, row.EntryDate)
	if err != nil {
		return e, fmt.Errorf("entry %d: parse date %q: %w", row.ID, row.EntryDate, err)
	}
	e.Date = date
	return e, nil
}

func (r *SQLiteRepository) Append(ctx context.Context, input ledger.AppendInput) (int64, error) {
	return insertEntry(ctx, r.db, input)
}

func insertEntry(ctx context.Context, e sqlx.ExtContext, input ledger.AppendInput) (int64, error) {
	if !input.Kind.Valid() {
		return 0, fmt.Errorf("%w: unrecognized kind %q", ledger.ErrInvalidEntry, input.Kind)
	}
	if input.Units != nil && *input.Units < 0 {
		return 0, fmt.Errorf("%w: negative units %d", ledger.ErrInvalidEntry, *input.Units)
	}

	res, err := sqlx.NamedExecContext(ctx, e, `
		INSERT INTO ledger_entries (item_name, kind, units, price, entry_date)
		VALUES (:item_name, :kind, :units, :price, :entry_date)`,
		map[string]interface{}{
			"item_name":  input.ItemName,
			"kind":       string(input.Kind),
			"units":      input.Units,
			"price":      input.Price.String(),
			"entry_date": input.Date.UTC().Format(timeLayout),
		})
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted entry id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Query(ctx context.Context, f ledger.Filter) ([]model.LedgerEntry, error) {
	conditions := []string{"entry_date <= :until"}
	args := map[string]interface{}{
		"until": f.Until.UTC().Format(timeLayout),
	}

	if f.ItemName != nil {
		conditions = append(conditions, "item_name = :item_name")
		args["item_name"] = *f.ItemName
	}
	if f.Kind != nil {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = string(*f.Kind)
	}

	query := "SELECT * FROM ledger_entries WHERE " + strings.Join(conditions, " AND ") + " ORDER BY id"

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		var row entryRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entry, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *SQLiteRepository) CommitSale(ctx context.Context, lines []ledger.SaleLine, date time.Time) ([]int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin sale tx: %w", err)
	}
	defer tx.Rollback()

	cutoff := date.UTC().Format(timeLayout)
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		var stock int64
		err := tx.GetContext(ctx, &stock,
			"SELECT "+stockExpr+" FROM ledger_entries WHERE item_name = ? AND entry_date <= ?",
			line.ItemName, cutoff)
		if err != nil {
			return nil, fmt.Errorf("re-validate stock for %s: %w", line.ItemName, err)
		}
		if stock < line.Units {
			return nil, fmt.Errorf("%s: have %d, need %d: %w",
				line.ItemName, stock, line.Units, ledger.ErrInsufficientStock)
		}

		name := line.ItemName
		units := line.Units
		id, err := insertEntry(ctx, tx, ledger.AppendInput{
			ItemName: &name,
			Kind:     model.KindSale,
			Units:    &units,
			Price:    line.Price,
			Date:     date,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) StockAsOf(ctx context.Context, itemName string, until time.Time) (int64, error) {
	var stock int64
	err := r.db.GetContext(ctx, &stock,
		"SELECT "+stockExpr+" FROM ledger_entries WHERE item_name = ? AND entry_date <= ?",
		itemName, until.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("compute stock for %s: %w", itemName, err)
	}
	return stock, nil
}

func (r *SQLiteRepository) AllStockAsOf(ctx context.Context, until time.Time) (map[string]int64, error) {
	return r.stockByItem(ctx, until, "stock > 0")
}

func (r *SQLiteRepository) NegativeStockAsOf(ctx context.Context, until time.Time) ([]model.StockAnomaly, error) {
	byItem, err := r.stockByItem(ctx, until, "stock < 0")
	if err != nil {
		return nil, err
	}

	anomalies := make([]model.StockAnomaly, 0, len(byItem))
	for name, stock := range byItem {
		anomalies = append(anomalies, model.StockAnomaly{ItemName: name, Stock: stock})
	}
	sort.Slice(anomalies, func(i, j int) bool { return anomalies[i].ItemName < anomalies[j].ItemName })
	return anomalies, nil
}

func (r *SQLiteRepository) stockByItem(ctx context.Context, until time.Time, having string) (map[string]int64, error) {
	query := `
		SELECT item_name, ` + stockExpr + ` AS stock
		FROM ledger_entries
		WHERE item_name IS NOT NULL AND entry_date <= ?
		GROUP BY item_name
		HAVING ` + having

	rows, err := r.db.QueryxContext(ctx, query, until.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("aggregate stock by item: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var name string
		var stock int64
		if err := rows.Scan(&name, &stock); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		result[name] = stock
	}
	return result, rows.Err()
}

