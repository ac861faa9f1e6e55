package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
	"github.com/weeraman/plantation-erp/pkg/utils"
)

const assetNumberPrefix = "AS"

type AssetService struct {
	AssetRepo repository.AssetRepository
	logger    *zap.Logger
}

func NewAssetService(assetRepo repository.AssetRepository, logger *zap.Logger) *AssetService {
	return &AssetService{
		AssetRepo: assetRepo,
		logger:    logger,
	}
}

func (s *AssetService) CreateAsset(ctx context.Context, request *domain.CreateAssetRequest) (*domain.Asset, error) {
	purchaseDate, err := time.Parse("2006-01-02", request.PurchaseDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid purchase date", err)
	}

	now := time.Now()
	asset := &domain.Asset{
		ID:            uuid.New(),
		Name:          request.Name,
		CategoryID:    request.CategoryID,
		Type:          request.Type,
		PurchaseDate:  purchaseDate,
		PurchasePrice: request.PurchasePrice,
		CurrentValue:  request.PurchasePrice,
		Status:        domain.AssetStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.AssetRepo.Create(ctx, asset, func(year, sequence int) string {
		return utils.FormatSequenceNumber(assetNumberPrefix, year, sequence)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("asset created", zap.String("asset_number", asset.AssetNumber))

	return asset, nil
}

func (s *AssetService) GetAsset(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	asset, err := s.AssetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapAssetNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return asset, nil
}

func (s *AssetService) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return assets, nil
}

func (s *AssetService) UpdateAsset(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	if _, err := s.GetAsset(ctx, asset.ID); err != nil {
		return nil, err
	}

	asset.UpdatedAt = time.Now()
	if err := s.AssetRepo.Update(ctx, asset); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.GetAsset(ctx, asset.ID)
}

func (s *AssetService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetAsset(ctx, id); err != nil {
		return err
	}
	if err := s.AssetRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// DepreciationReport values every active asset by declining balance against
// its category rate, as of the given date.
func (s *AssetService) DepreciationReport(ctx context.Context, now time.Time) ([]*domain.DepreciationReportRow, error) {
	assets, err := s.AssetRepo.ListActiveWithRates(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	report := make([]*domain.DepreciationReportRow, 0, len(assets))
	for _, asset := range assets {
		age := utils.AgeInYears(asset.PurchaseDate, now)
		value := utils.DecliningBalanceValue(asset.PurchasePrice, asset.DepreciationRate, age)

		report = append(report, &domain.DepreciationReportRow{
			Name:             asset.Name,
			AssetNumber:      asset.AssetNumber,
			PurchasePrice:    asset.PurchasePrice,
			PurchaseDate:     asset.PurchaseDate,
			CurrentValue:     value,
			Depreciation:     asset.PurchasePrice.Sub(value),
			DepreciationRate: asset.DepreciationRate,
		})
	}

	return report, nil
}

// RevalueAssets is run by the scheduler: each active asset's book value is
// recomputed and written back.
func (s *AssetService) RevalueAssets(ctx context.Context, now time.Time) error {
	assets, err := s.AssetRepo.ListActiveWithRates(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	for _, asset := range assets {
		age := utils.AgeInYears(asset.PurchaseDate, now)
		value := utils.DecliningBalanceValue(asset.PurchasePrice, asset.DepreciationRate, age)

		if err := s.AssetRepo.UpdateCurrentValue(ctx, asset.ID, value); err != nil {
			return customError.WrapDatabaseError(err)
		}
	}

	s.logger.Info("assets revalued", zap.Int("count", len(assets)))

	return nil
}

func (s *AssetService) CreateCategory(ctx context.Context, category *domain.AssetCategory) (*domain.AssetCategory, error) {
	category.ID = uuid.New()
	category.Status = "active"
	category.CreatedAt = time.Now()

	if err := s.AssetRepo.CreateCategory(ctx, category); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return category, nil
}

func (s *AssetService) ListCategories(ctx context.Context) ([]*domain.AssetCategory, error) {
	categories, err := s.AssetRepo.ListCategories(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return categories, nil
}
