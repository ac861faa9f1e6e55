package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
)

type assetRepository struct {
	db *sqlx.DB
}

func NewAssetRepository(db *sqlx.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset, number func(year, sequence int) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM assets WHERE date_part('year', created_at) = date_part('year', CURRENT_DATE)`)
	if err != nil {
		return err
	}
	asset.AssetNumber = number(time.Now().Year(), count+1)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO assets (id, asset_number, name, category_id, type, purchase_date,
			purchase_price, current_value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		asset.ID,
		asset.AssetNumber,
		asset.Name,
		asset.CategoryID,
		asset.Type,
		asset.PurchaseDate,
		asset.PurchasePrice,
		asset.CurrentValue,
		asset.Status,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT a.id, a.asset_number, a.name, a.category_id, ac.name AS category_name,
		       a.type, a.purchase_date, a.purchase_price, a.current_value,
		       ac.depreciation_rate, a.status, a.created_at, a.updated_at
		FROM assets a
		JOIN asset_categories ac ON a.category_id = ac.id
		WHERE a.id = $1
	`

	var asset domain.Asset
	if err := r.db.GetContext(ctx, &asset, query, id); err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT a.id, a.asset_number, a.name, a.category_id, ac.name AS category_name,
		       a.type, a.purchase_date, a.purchase_price, a.current_value,
		       ac.depreciation_rate, a.status, a.created_at, a.updated_at
		FROM assets a
		JOIN asset_categories ac ON a.category_id = ac.id
		ORDER BY a.name
	`

	var assets []*domain.Asset
	if err := r.db.SelectContext(ctx, &assets, query); err != nil {
		return nil, err
	}

	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $2, category_id = $3, type = $4, purchase_date = $5,
		    purchase_price = $6, current_value = $7, status = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		asset.CategoryID,
		asset.Type,
		asset.PurchaseDate,
		asset.PurchasePrice,
		asset.CurrentValue,
		asset.Status,
		time.Now(),
	)

	return err
}

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}

func (r *assetRepository) ListActiveWithRates(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT a.id, a.asset_number, a.name, a.category_id, ac.name AS category_name,
		       a.type, a.purchase_date, a.purchase_price, a.current_value,
		       ac.depreciation_rate, a.status, a.created_at, a.updated_at
		FROM assets a
		JOIN asset_categories ac ON a.category_id = ac.id
		WHERE a.status = 'active'
		ORDER BY a.name
	`

	var assets []*domain.Asset
	if err := r.db.SelectContext(ctx, &assets, query); err != nil {
		return nil, err
	}

	return assets, nil
}

func (r *assetRepository) UpdateCurrentValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) error {
	query := `
		UPDATE assets
		SET current_value = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, value, time.Now())
	return err
}

func (r *assetRepository) CreateCategory(ctx context.Context, category *domain.AssetCategory) error {
	query := `
		INSERT INTO asset_categories (id, name, depreciation_rate, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.DepreciationRate,
		category.Status,
		category.CreatedAt,
	)

	return err
}

func (r *assetRepository) ListCategories(ctx context.Context) ([]*domain.AssetCategory, error) {
	query := `
		SELECT id, name, depreciation_rate, status, created_at
		FROM asset_categories
		WHERE status = 'active'
		ORDER BY name
	`

	var categories []*domain.AssetCategory
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}
