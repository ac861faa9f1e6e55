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
)

type InventoryService struct {
	InventoryRepo repository.InventoryRepository
	logger        *zap.Logger
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		InventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

func (s *InventoryService) CreateItem(ctx context.Context, request *domain.CreateItemRequest) (*domain.InventoryItem, error) {
	existing, err := s.InventoryRepo.GetByProductName(ctx, request.ProductName)
	if err == nil && existing != nil {
		return nil, customError.WrapItemAlreadyExists(request.ProductName)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	item := &domain.InventoryItem{
		ID:          uuid.New(),
		ProductName: request.ProductName,
		ProductType: request.ProductType,
		Quantity:    request.Quantity,
		Unit:        request.Unit,
		UnitPrice:   request.UnitPrice,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.InventoryRepo.Create(ctx, item); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("inventory item created", zap.String("product", item.ProductName))

	return item, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	item, err := s.InventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapItemNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return item, nil
}

func (s *InventoryService) ListItems(ctx context.Context, productType string) ([]*domain.InventoryItem, error) {
	items, err := s.InventoryRepo.List(ctx, productType)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return items, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if _, err := s.GetItem(ctx, item.ID); err != nil {
		return nil, err
	}
	if err := s.InventoryRepo.Update(ctx, item); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.GetItem(ctx, item.ID)
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.InventoryRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// RecordMovement applies a stock in/out movement to an item. Overdraws are
// rejected by the repository inside its transaction.
func (s *InventoryService) RecordMovement(ctx context.Context, itemID uuid.UUID, request *domain.StockMovementRequest) (*domain.StockMovement, error) {
	movement := &domain.StockMovement{
		ID:        uuid.New(),
		ItemID:    itemID,
		Type:      request.Type,
		Quantity:  request.Quantity,
		Reference: request.Reference,
		Notes:     request.Notes,
		CreatedAt: time.Now(),
	}

	if err := s.InventoryRepo.ApplyMovement(ctx, movement); err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, err
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return movement, nil
}

func (s *InventoryService) ListMovements(ctx context.Context, itemID uuid.UUID) ([]*domain.StockMovement, error) {
	movements, err := s.InventoryRepo.ListMovements(ctx, itemID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return movements, nil
}
