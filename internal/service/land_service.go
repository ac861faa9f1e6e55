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

type LandService struct {
	LandRepo repository.LandRepository
	logger   *zap.Logger
}

func NewLandService(landRepo repository.LandRepository, logger *zap.Logger) *LandService {
	return &LandService{
		LandRepo: landRepo,
		logger:   logger,
	}
}

func (s *LandService) CreateLand(ctx context.Context, request *domain.CreateLandRequest) (*domain.Land, error) {
	existing, err := s.LandRepo.GetByLandNumber(ctx, request.LandNumber)
	if err == nil && existing != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput,
			"land number already in use", nil)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	land := &domain.Land{
		ID:           uuid.New(),
		LandNumber:   request.LandNumber,
		Name:         request.Name,
		Location:     request.Location,
		AreaHectares: request.AreaHectares,
		Status:       domain.LandStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.LandRepo.Create(ctx, land); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("land created", zap.String("land_number", land.LandNumber))

	return land, nil
}

func (s *LandService) GetLand(ctx context.Context, id uuid.UUID) (*domain.Land, error) {
	land, err := s.LandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLandNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return land, nil
}

func (s *LandService) UpdateLand(ctx context.Context, land *domain.Land) (*domain.Land, error) {
	if _, err := s.GetLand(ctx, land.ID); err != nil {
		return nil, err
	}

	land.UpdatedAt = time.Now()
	if err := s.LandRepo.Update(ctx, land); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.GetLand(ctx, land.ID)
}

func (s *LandService) ListLands(ctx context.Context) ([]*domain.LandWithAssignment, error) {
	lands, err := s.LandRepo.ListActiveWithAssignments(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return lands, nil
}

// AssignContractor opens a cutting assignment for a contractor on a land.
func (s *LandService) AssignContractor(ctx context.Context, landID uuid.UUID, request *domain.AssignLandRequest) (*domain.LandAssignment, error) {
	if _, err := s.GetLand(ctx, landID); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid start date", err)
	}
	endDate, err := time.Parse("2006-01-02", request.EndDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidInput, "invalid end date", err)
	}

	assignment := &domain.LandAssignment{
		ID:           uuid.New(),
		LandID:       landID,
		ContractorID: request.ContractorID,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       domain.AssignmentStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := s.LandRepo.Assign(ctx, assignment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return assignment, nil
}
