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

const orderNumberPrefix = "MO"

type ManufacturingService struct {
	OrderRepo repository.ManufacturingRepository
	logger    *zap.Logger
}

func NewManufacturingService(orderRepo repository.ManufacturingRepository, logger *zap.Logger) *ManufacturingService {
	return &ManufacturingService{
		OrderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *ManufacturingService) CreateOrder(ctx context.Context, request *domain.CreateOrderRequest) (*domain.ManufacturingOrder, error) {
	startDate, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid start date", err)
	}
	endDate, err := time.Parse("2006-01-02", request.EndDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid end date", err)
	}

	now := time.Now()
	order := &domain.ManufacturingOrder{
		ID:        uuid.New(),
		ProductID: request.ProductID,
		Quantity:  request.Quantity,
		Status:    domain.OrderStatusPlanned,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     request.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.OrderRepo.Create(ctx, order, func(year, sequence int) string {
		return utils.FormatSequenceNumber(orderNumberPrefix, year, sequence)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("manufacturing order created", zap.String("order_number", order.OrderNumber))

	return order, nil
}

func (s *ManufacturingService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.ManufacturingOrder, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapOrderNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return order, nil
}

func (s *ManufacturingService) ListOrders(ctx context.Context) ([]*domain.ManufacturingOrder, error) {
	orders, err := s.OrderRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return orders, nil
}

func (s *ManufacturingService) UpdateOrder(ctx context.Context, id uuid.UUID, request *domain.UpdateOrderRequest) (*domain.ManufacturingOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	// Pointer fields distinguish "leave alone" from "set", so a request can
	// clear notes or set a zero quantity explicitly.
	if request.Quantity != nil {
		order.Quantity = *request.Quantity
	}
	if request.Status != nil {
		order.Status = *request.Status
	}
	if request.StartDate != nil {
		if order.StartDate, err = time.Parse("2006-01-02", *request.StartDate); err != nil {
			return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid start date", err)
		}
	}
	if request.EndDate != nil {
		if order.EndDate, err = time.Parse("2006-01-02", *request.EndDate); err != nil {
			return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid end date", err)
		}
	}
	if request.Notes != nil {
		order.Notes = *request.Notes
	}

	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.GetOrder(ctx, id)
}

// DeleteOrder removes a planned or cancelled order. Runs that have started
// or finished stay on record.
func (s *ManufacturingService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == domain.OrderStatusInProgress || order.Status == domain.OrderStatusCompleted {
		return customError.WrapOrderNotDeletable(order.OrderNumber)
	}

	if err := s.OrderRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}
