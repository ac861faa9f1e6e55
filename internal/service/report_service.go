package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/config"
	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

const (
	dashboardCacheKey = "report:dashboard"
	revenueCacheKey   = "report:revenue-series"
	revenueSeriesLen  = 6
)

type ReportService struct {
	ReportRepo repository.ReportRepository
	redis      *redis.Client
	config     *config.Config
	logger     *zap.Logger
}

func NewReportService(reportRepo repository.ReportRepository, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *ReportService {
	return &ReportService{
		ReportRepo: reportRepo,
		redis:      redisClient,
		config:     cfg,
		logger:     logger,
	}
}

// Dashboard aggregates the landing-page figures, serving from cache when a
// recent snapshot exists.
func (s *ReportService) Dashboard(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if s.fromCache(ctx, dashboardCacheKey, &summary) {
		return &summary, nil
	}

	lands, err := s.ReportRepo.ActiveLandsCount(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	loans, err := s.ReportRepo.ActiveLoansCount(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	orders, err := s.ReportRepo.PendingOrdersCount(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	revenue, err := s.ReportRepo.MonthlyRevenue(ctx, now)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary = domain.DashboardSummary{
		ActiveLands:    lands,
		ActiveLoans:    loans,
		PendingOrders:  orders,
		MonthlyRevenue: revenue,
	}

	s.toCache(ctx, dashboardCacheKey, &summary)

	return &summary, nil
}

// RevenueSeries returns the last six months of sales revenue.
func (s *ReportService) RevenueSeries(ctx context.Context) ([]*domain.MonthRevenue, error) {
	var series []*domain.MonthRevenue
	if s.fromCache(ctx, revenueCacheKey, &series) {
		return series, nil
	}

	series, err := s.ReportRepo.RevenueSeries(ctx, revenueSeriesLen)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.toCache(ctx, revenueCacheKey, series)

	return series, nil
}

func (s *ReportService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}

	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
		return false
	}

	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *ReportService) toCache(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.config.GetCacheTTL()).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}
