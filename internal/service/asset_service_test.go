package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository/mocks"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

func TestCreateAsset_StartsAtPurchasePrice(t *testing.T) {
	mockAssetRepo := &mocks.MockAssetRepository{}
	service := NewAssetService(mockAssetRepo, zap.NewNop())

	mockAssetRepo.On("Create", mock.Anything, mock.MatchedBy(func(asset *domain.Asset) bool {
		return asset.CurrentValue.Equal(asset.PurchasePrice) &&
			asset.Status == domain.AssetStatusActive
	}), mock.Anything).Return(nil)

	asset, err := service.CreateAsset(context.Background(), &domain.CreateAssetRequest{
		Name:          "Tea Roller",
		CategoryID:    uuid.New(),
		Type:          "equipment",
		PurchaseDate:  "2023-06-15",
		PurchasePrice: decimal.NewFromInt(450000),
	})

	require.NoError(t, err)
	assert.True(t, asset.CurrentValue.Equal(decimal.NewFromInt(450000)))
	mockAssetRepo.AssertExpectations(t)
}

func TestCreateAsset_BadDate(t *testing.T) {
	mockAssetRepo := &mocks.MockAssetRepository{}
	service := NewAssetService(mockAssetRepo, zap.NewNop())

	_, err := service.CreateAsset(context.Background(), &domain.CreateAssetRequest{
		Name:          "Tea Roller",
		CategoryID:    uuid.New(),
		Type:          "equipment",
		PurchaseDate:  "15/06/2023",
		PurchasePrice: decimal.NewFromInt(450000),
	})

	require.Error(t, err)
	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeInvalidInput, businessErr.Code)
	mockAssetRepo.AssertNotCalled(t, "Create")
}

func TestDepreciationReport_DecliningBalance(t *testing.T) {
	mockAssetRepo := &mocks.MockAssetRepository{}
	service := NewAssetService(mockAssetRepo, zap.NewNop())

	purchased := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	now := purchased.Add(2 * 365 * 24 * time.Hour)
	mockAssetRepo.On("ListActiveWithRates", mock.Anything).Return([]*domain.Asset{
		{
			ID:               uuid.New(),
			Name:             "Tractor",
			AssetNumber:      "AS230001",
			PurchaseDate:     purchased,
			PurchasePrice:    decimal.NewFromInt(100000),
			DepreciationRate: decimal.NewFromInt(20),
		},
	}, nil)

	report, err := service.DepreciationReport(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, report, 1)

	// Two full years at 20% declining balance: 100000 * 0.8^2.
	assert.True(t, report[0].CurrentValue.Equal(decimal.NewFromInt(64000)),
		"got %s", report[0].CurrentValue)
	assert.True(t, report[0].Depreciation.Equal(decimal.NewFromInt(36000)))
}

func TestRevalueAssets_WritesBack(t *testing.T) {
	mockAssetRepo := &mocks.MockAssetRepository{}
	service := NewAssetService(mockAssetRepo, zap.NewNop())

	assetID := uuid.New()
	purchased := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := purchased.Add(365 * 24 * time.Hour)

	mockAssetRepo.On("ListActiveWithRates", mock.Anything).Return([]*domain.Asset{
		{
			ID:               assetID,
			PurchaseDate:     purchased,
			PurchasePrice:    decimal.NewFromInt(50000),
			DepreciationRate: decimal.NewFromInt(10),
		},
	}, nil)
	mockAssetRepo.On("UpdateCurrentValue", mock.Anything, assetID,
		mock.MatchedBy(func(value decimal.Decimal) bool {
			return value.Equal(decimal.NewFromInt(45000))
		})).Return(nil)

	err := service.RevalueAssets(context.Background(), now)

	require.NoError(t, err)
	mockAssetRepo.AssertExpectations(t)
}
