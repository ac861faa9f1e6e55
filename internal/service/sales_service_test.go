package service

import (
	"context"
	"database/sql"
	"testing"

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

func TestCreateInvoice_PricesAndTotals(t *testing.T) {
	mockSalesRepo := &mocks.MockSalesRepository{}
	mockInventoryRepo := &mocks.MockInventoryRepository{}

	service := NewSalesService(mockSalesRepo, mockInventoryRepo, zap.NewNop())

	teaID := uuid.New()
	rubberID := uuid.New()

	mockInventoryRepo.On("GetByID", mock.Anything, teaID).Return(&domain.InventoryItem{
		ID:        teaID,
		UnitPrice: decimal.RequireFromString("1250.50"),
	}, nil)
	mockInventoryRepo.On("GetByID", mock.Anything, rubberID).Return(&domain.InventoryItem{
		ID:        rubberID,
		UnitPrice: decimal.NewFromInt(600),
	}, nil)

	mockSalesRepo.On("CreateWithItems", mock.Anything,
		mock.MatchedBy(func(invoice *domain.SalesInvoice) bool {
			// 10 * 1250.50 + 5 * 600 = 15505.00, tax 8% = 1240.40
			return invoice.SubTotal.Equal(decimal.RequireFromString("15505")) &&
				invoice.Tax.Equal(decimal.RequireFromString("1240.40")) &&
				invoice.Total.Equal(decimal.RequireFromString("16745.40")) &&
				invoice.Status == domain.InvoiceStatusConfirmed
		}),
		mock.MatchedBy(func(items []*domain.SalesItem) bool {
			return len(items) == 2
		}),
		mock.Anything,
	).Return(nil)

	invoice, items, err := service.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		CustomerName: "Ceylon Traders",
		TaxPercent:   decimal.NewFromInt(8),
		Items: []domain.InvoiceItemRequest{
			{ItemID: teaID, Quantity: decimal.NewFromInt(10)},
			{ItemID: rubberID, Quantity: decimal.NewFromInt(5)},
		},
	})

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, items[0].LineTotal.Equal(decimal.RequireFromString("12505")))
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("16745.40")))

	mockSalesRepo.AssertExpectations(t)
	mockInventoryRepo.AssertExpectations(t)
}

func TestCreateInvoice_UnknownItem(t *testing.T) {
	mockSalesRepo := &mocks.MockSalesRepository{}
	mockInventoryRepo := &mocks.MockInventoryRepository{}

	service := NewSalesService(mockSalesRepo, mockInventoryRepo, zap.NewNop())

	itemID := uuid.New()
	mockInventoryRepo.On("GetByID", mock.Anything, itemID).Return(nil, sql.ErrNoRows)

	_, _, err := service.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		CustomerName: "Ceylon Traders",
		Items: []domain.InvoiceItemRequest{
			{ItemID: itemID, Quantity: decimal.NewFromInt(1)},
		},
	})

	assert.ErrorIs(t, err, customError.ErrItemNotFound)
	mockSalesRepo.AssertNotCalled(t, "CreateWithItems")
}

func TestCreateInvoice_InsufficientStockPassesThrough(t *testing.T) {
	mockSalesRepo := &mocks.MockSalesRepository{}
	mockInventoryRepo := &mocks.MockInventoryRepository{}

	service := NewSalesService(mockSalesRepo, mockInventoryRepo, zap.NewNop())

	itemID := uuid.New()
	mockInventoryRepo.On("GetByID", mock.Anything, itemID).Return(&domain.InventoryItem{
		ID:        itemID,
		UnitPrice: decimal.NewFromInt(100),
	}, nil)
	mockSalesRepo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(customError.WrapInsufficientStock("Black Tea"))

	_, _, err := service.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		CustomerName: "Ceylon Traders",
		Items: []domain.InvoiceItemRequest{
			{ItemID: itemID, Quantity: decimal.NewFromInt(1000)},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrInsufficientStock)

	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeInsufficientStock, businessErr.Code)
}
