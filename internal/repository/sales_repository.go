package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) CreateWithItems(ctx context.Context, invoice *domain.SalesInvoice, items []*domain.SalesItem, number func(year, sequence int) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sales_invoices WHERE date_part('year', created_at) = date_part('year', CURRENT_DATE)`)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = number(time.Now().Year(), count+1)

	// Stock is checked and decremented line by line under row locks, so a
	// competing invoice cannot oversell the same item.
	for _, line := range items {
		var stock struct {
			ProductName string          `db:"product_name"`
			Quantity    decimal.Decimal `db:"quantity"`
		}
		err = tx.GetContext(ctx, &stock,
			`SELECT product_name, quantity FROM inventory WHERE id = $1 FOR UPDATE`,
			line.ItemID)
		if err != nil {
			if err == sql.ErrNoRows {
				return customError.WrapItemNotFound(line.ItemID.String())
			}
			return err
		}

		remaining := stock.Quantity.Sub(line.Quantity)
		if remaining.IsNegative() {
			return customError.WrapInsufficientStock(stock.ProductName)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE inventory SET quantity = $2, updated_at = $3 WHERE id = $1`,
			line.ItemID, remaining, time.Now())
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales_invoices (id, invoice_number, customer_name, customer_address,
			customer_phone, date, sub_total, tax, total, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.CustomerName,
		invoice.CustomerAddress,
		invoice.CustomerPhone,
		invoice.Date,
		invoice.SubTotal,
		invoice.Tax,
		invoice.Total,
		invoice.Status,
		invoice.Notes,
		invoice.CreatedAt,
	)
	if err != nil {
		return err
	}

	lineQuery := `
		INSERT INTO sales_items (id, invoice_id, item_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, line := range items {
		_, err = tx.ExecContext(ctx, lineQuery,
			line.ID,
			line.InvoiceID,
			line.ItemID,
			line.Quantity,
			line.UnitPrice,
			line.LineTotal,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *salesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesInvoice, []*domain.SalesItem, error) {
	var invoice domain.SalesInvoice
	err := r.db.GetContext(ctx, &invoice, `
		SELECT id, invoice_number, customer_name, customer_address, customer_phone,
		       date, sub_total, tax, total, status, notes, created_at
		FROM sales_invoices
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, nil, err
	}

	var items []*domain.SalesItem
	err = r.db.SelectContext(ctx, &items, `
		SELECT id, invoice_id, item_id, quantity, unit_price, line_total
		FROM sales_items
		WHERE invoice_id = $1
	`, id)
	if err != nil {
		return nil, nil, err
	}

	return &invoice, items, nil
}

func (r *salesRepository) List(ctx context.Context) ([]*domain.SalesInvoice, error) {
	query := `
		SELECT id, invoice_number, customer_name, customer_address, customer_phone,
		       date, sub_total, tax, total, status, notes, created_at
		FROM sales_invoices
		ORDER BY date DESC
	`

	var invoices []*domain.SalesInvoice
	if err := r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, err
	}

	return invoices, nil
}
