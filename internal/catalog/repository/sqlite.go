package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	name       TEXT PRIMARY KEY,
	category   TEXT NOT NULL,
	unit_price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_records (
	item_name       TEXT PRIMARY KEY,
	category        TEXT NOT NULL,
	unit_price      TEXT NOT NULL,
	current_stock   INTEGER NOT NULL,
	min_stock_level INTEGER NOT NULL
);
`

type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceCatalog(ctx context.Context, items []model.CatalogItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO catalog_items (name, category, unit_price) VALUES (?, ?, ?)",
			item.Name, item.Category, item.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("insert catalog item %s: %w", item.Name, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetItem(ctx context.Context, name string) (*model.CatalogItem, error) {
	var row struct {
		Name      string `db:"name"`
		Category  string `db:"category"`
		UnitPrice string `db:"unit_price"`
	}
	err := r.db.GetContext(ctx, &row,
		"SELECT name, category, unit_price FROM catalog_items WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog item %s: %w", name, err)
	}

	price, err := decimal.NewFromString(row.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("catalog item %s: parse price %q: %w", name, row.UnitPrice, err)
	}
	return &model.CatalogItem{Name: row.Name, Category: row.Category, UnitPrice: price}, nil
}

func (r *SQLiteRepository) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	rows, err := r.db.QueryxContext(ctx,
		"SELECT name, category, unit_price FROM catalog_items ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var items []model.CatalogItem
	for rows.Next() {
		var name, category, priceStr string
		if err := rows.Scan(&name, &category, &priceStr); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("catalog item %s: parse price %q: %w", name, priceStr, err)
		}
		items = append(items, model.CatalogItem{Name: name, Category: category, UnitPrice: price})
	}
	return items, rows.Err()
}

func (r *SQLiteRepository) ReplaceInventoryRecords(ctx context.Context, records []model.InventoryRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin inventory replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM inventory_records"); err != nil {
		return fmt.Errorf("clear inventory records: %w", err)
	}
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_records (item_name, category, unit_price, current_stock, min_stock_level)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ItemName, rec.Category, rec.UnitPrice.String(), rec.CurrentStock, rec.MinStockLevel)
		if err != nil {
			return fmt.Errorf("insert inventory record %s: %w", rec.ItemName, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListInventoryRecords(ctx context.Context) ([]model.InventoryRecord, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT item_name, category, unit_price, current_stock, min_stock_level
		FROM inventory_records ORDER BY item_name`)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		var rec model.InventoryRecord
		var priceStr string
		if err := rows.Scan(&rec.ItemName, &rec.Category, &priceStr, &rec.CurrentStock, &rec.MinStockLevel); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("inventory record %s: parse price %q: %w", rec.ItemName, priceStr, err)
		}
		rec.UnitPrice = price
		records = append(records, rec)
	}
	return records, rows.Err()
}
