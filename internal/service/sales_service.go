package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
	"github.com/weeraman/plantation-erp/pkg/utils"
)

const invoiceNumberPrefix = "INV"

var hundred = decimal.NewFromInt(100)

type SalesService struct {
	SalesRepo     repository.SalesRepository
	InventoryRepo repository.InventoryRepository
	logger        *zap.Logger
}

func NewSalesService(salesRepo repository.SalesRepository, inventoryRepo repository.InventoryRepository, logger *zap.Logger) *SalesService {
	return &SalesService{
		SalesRepo:     salesRepo,
		InventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// CreateInvoice prices each line from current inventory, totals the invoice
// and persists it together with the stock decrements in one transaction.
func (s *SalesService) CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest) (*domain.SalesInvoice, []*domain.SalesItem, error) {
	now := time.Now()
	invoiceID := uuid.New()

	subTotal := decimal.Zero
	items := make([]*domain.SalesItem, 0, len(request.Items))
	for _, line := range request.Items {
		item, err := s.InventoryRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, customError.WrapItemNotFound(line.ItemID.String())
			}
			return nil, nil, customError.WrapDatabaseError(err)
		}

		lineTotal := item.UnitPrice.Mul(line.Quantity).Round(2)
		subTotal = subTotal.Add(lineTotal)

		items = append(items, &domain.SalesItem{
			ID:        uuid.New(),
			InvoiceID: invoiceID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	tax := subTotal.Mul(request.TaxPercent).Div(hundred).Round(2)
	invoice := &domain.SalesInvoice{
		ID:              invoiceID,
		CustomerName:    request.CustomerName,
		CustomerAddress: request.CustomerAddress,
		CustomerPhone:   request.CustomerPhone,
		Date:            now,
		SubTotal:        subTotal,
		Tax:             tax,
		Total:           subTotal.Add(tax),
		Status:          domain.InvoiceStatusConfirmed,
		Notes:           request.Notes,
		CreatedAt:       now,
	}

	err := s.SalesRepo.CreateWithItems(ctx, invoice, items, func(year, sequence int) string {
		return utils.FormatSequenceNumber(invoiceNumberPrefix, year, sequence)
	})
	if err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, nil, err
		}
		return nil, nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total.String()),
	)

	return invoice, items, nil
}

func (s *SalesService) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.SalesInvoice, []*domain.SalesItem, error) {
	invoice, items, err := s.SalesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, customError.WrapInvoiceNotFound(id.String())
		}
		return nil, nil, customError.WrapDatabaseError(err)
	}
	return invoice, items, nil
}

func (s *SalesService) ListInvoices(ctx context.Context) ([]*domain.SalesInvoice, error) {
	invoices, err := s.SalesRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}
