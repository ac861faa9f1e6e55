package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/weeraman/plantation-erp/internal/domain"
)

type manufacturingRepository struct {
	db *sqlx.DB
}

func NewManufacturingRepository(db *sqlx.DB) ManufacturingRepository {
	return &manufacturingRepository{db: db}
}

func (r *manufacturingRepository) Create(ctx context.Context, order *domain.ManufacturingOrder, number func(year, sequence int) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM manufacturing_orders WHERE date_part('year', created_at) = date_part('year', CURRENT_DATE)`)
	if err != nil {
		return err
	}
	order.OrderNumber = number(time.Now().Year(), count+1)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO manufacturing_orders (id, order_number, product_id, quantity, status,
			start_date, end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		order.ID,
		order.OrderNumber,
		order.ProductID,
		order.Quantity,
		order.Status,
		order.StartDate,
		order.EndDate,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *manufacturingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ManufacturingOrder, error) {
	query := `
		SELECT mo.id, mo.order_number, mo.product_id, i.product_name,
		       mo.quantity, mo.status, mo.start_date, mo.end_date, mo.notes,
		       mo.created_at, mo.updated_at
		FROM manufacturing_orders mo
		JOIN inventory i ON mo.product_id = i.id
		WHERE mo.id = $1
	`

	var order domain.ManufacturingOrder
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *manufacturingRepository) List(ctx context.Context) ([]*domain.ManufacturingOrder, error) {
	query := `
		SELECT mo.id, mo.order_number, mo.product_id, i.product_name,
		       mo.quantity, mo.status, mo.start_date, mo.end_date, mo.notes,
		       mo.created_at, mo.updated_at
		FROM manufacturing_orders mo
		JOIN inventory i ON mo.product_id = i.id
		ORDER BY mo.created_at DESC
	`

	var orders []*domain.ManufacturingOrder
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *manufacturingRepository) Update(ctx context.Context, order *domain.ManufacturingOrder) error {
	query := `
		UPDATE manufacturing_orders
		SET quantity = $2, status = $3, start_date = $4, end_date = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Quantity,
		order.Status,
		order.StartDate,
		order.EndDate,
		order.Notes,
		time.Now(),
	)

	return err
}

func (r *manufacturingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM manufacturing_orders WHERE id = $1`, id)
	return err
}
