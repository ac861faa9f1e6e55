package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/weeraman/plantation-erp/internal/domain"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, product_name, product_type, quantity, unit, unit_price,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProductName,
		item.ProductType,
		item.Quantity,
		item.Unit,
		item.UnitPrice,
		item.Status,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query := `
		SELECT id, product_name, product_type, quantity, unit, unit_price, status, created_at, updated_at
		FROM inventory
		WHERE id = $1
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *inventoryRepository) GetByProductName(ctx context.Context, name string) (*domain.InventoryItem, error) {
	query := `
		SELECT id, product_name, product_type, quantity, unit, unit_price, status, created_at, updated_at
		FROM inventory
		WHERE product_name = $1
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, name); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, productType string) ([]*domain.InventoryItem, error) {
	query := `
		SELECT id, product_name, product_type, quantity, unit, unit_price, status, created_at, updated_at
		FROM inventory
	`
	args := []interface{}{}

	if productType != "" {
		query += ` WHERE product_type = $1`
		args = append(args, productType)
	}
	query += ` ORDER BY product_name`

	var items []*domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory
		SET product_name = $2, product_type = $3, unit = $4, unit_price = $5,
		    status = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProductName,
		item.ProductType,
		item.Unit,
		item.UnitPrice,
		item.Status,
		time.Now(),
	)

	return err
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	return err
}

func (r *inventoryRepository) ApplyMovement(ctx context.Context, movement *domain.StockMovement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var item domain.InventoryItem
	err = tx.GetContext(ctx, &item,
		`SELECT id, product_name, quantity FROM inventory WHERE id = $1 FOR UPDATE`,
		movement.ItemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return customError.WrapItemNotFound(movement.ItemID.String())
		}
		return err
	}

	quantity := item.Quantity
	switch movement.Type {
	case domain.MovementTypeIn:
		quantity = quantity.Add(movement.Quantity)
	case domain.MovementTypeOut:
		quantity = quantity.Sub(movement.Quantity)
		if quantity.IsNegative() {
			return customError.WrapInsufficientStock(item.ProductName)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory SET quantity = $2, updated_at = $3 WHERE id = $1`,
		movement.ItemID, quantity, time.Now())
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_movements (id, item_id, type, quantity, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		movement.ID,
		movement.ItemID,
		movement.Type,
		movement.Quantity,
		movement.Reference,
		movement.Notes,
		movement.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *inventoryRepository) ListMovements(ctx context.Context, itemID uuid.UUID) ([]*domain.StockMovement, error) {
	query := `
		SELECT id, item_id, type, quantity, reference, notes, created_at
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at DESC
	`

	var movements []*domain.StockMovement
	if err := r.db.SelectContext(ctx, &movements, query, itemID); err != nil {
		return nil, err
	}

	return movements, nil
}
