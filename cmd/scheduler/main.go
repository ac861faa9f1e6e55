package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/config"
	"github.com/weeraman/plantation-erp/internal/repository"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/logger"
)

const jobTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	loanService := service.NewLoanService(
		repository.NewLoanRepository(db),
		repository.NewPaymentRepository(db),
		redisClient,
		cfg,
		zapLogger,
	)
	assetService := service.NewAssetService(repository.NewAssetRepository(db), zapLogger)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid scheduler timezone", zap.Error(err))
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	setupCronJobs(c, cfg, loanService, assetService, zapLogger)

	c.Start()
	zapLogger.Info("scheduler started", zap.String("timezone", cfg.Scheduler.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down scheduler")
	<-c.Stop().Done()
	zapLogger.Info("scheduler stopped")
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	loanService *service.LoanService,
	assetService *service.AssetService,
	zapLogger *zap.Logger,
) {
	// Daily sweep that flips schedule entries past the overdue window, and
	// any loans carrying them, to overdue.
	_, err := c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := loanService.MarkOverdue(ctx, time.Now()); err != nil {
			zapLogger.Error("overdue sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		zapLogger.Fatal("failed to schedule overdue sweep", zap.Error(err))
	}

	// Yearly revaluation writing each active asset's declining-balance
	// value back to the register.
	_, err = c.AddFunc(cfg.Scheduler.RevalueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := assetService.RevalueAssets(ctx, time.Now()); err != nil {
			zapLogger.Error("asset revaluation failed", zap.Error(err))
		}
	})
	if err != nil {
		zapLogger.Fatal("failed to schedule asset revaluation", zap.Error(err))
	}

	zapLogger.Info("cron jobs scheduled",
		zap.String("overdue_spec", cfg.Scheduler.OverdueSpec),
		zap.String("revalue_spec", cfg.Scheduler.RevalueSpec),
	)
}
