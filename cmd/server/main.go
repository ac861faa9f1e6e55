package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/config"
	"github.com/weeraman/plantation-erp/internal/handler"
	"github.com/weeraman/plantation-erp/internal/repository"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/logger"
	"github.com/weeraman/plantation-erp/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	db, err := initDB(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	manufacturingRepo := repository.NewManufacturingRepository(db)
	landRepo := repository.NewLandRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	loanService := service.NewLoanService(loanRepo, paymentRepo, redisClient, cfg, zapLogger)
	assetService := service.NewAssetService(assetRepo, zapLogger)
	inventoryService := service.NewInventoryService(inventoryRepo, zapLogger)
	salesService := service.NewSalesService(salesRepo, inventoryRepo, zapLogger)
	manufacturingService := service.NewManufacturingService(manufacturingRepo, zapLogger)
	landService := service.NewLandService(landRepo, zapLogger)
	reportService := service.NewReportService(reportRepo, redisClient, cfg, zapLogger)

	// Handlers
	loanHandler := handler.NewLoanHandler(loanService)
	assetHandler := handler.NewAssetHandler(assetService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	salesHandler := handler.NewSalesHandler(salesService)
	manufacturingHandler := handler.NewManufacturingHandler(manufacturingService)
	landHandler := handler.NewLandHandler(landService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(
		loanHandler,
		assetHandler,
		inventoryHandler,
		salesHandler,
		manufacturingHandler,
		landHandler,
		reportHandler,
		healthHandler,
	)
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(zapLogger))

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.GetReadTimeout(),
		WriteTimeout: cfg.Server.GetWriteTimeout(),
	}

	go func() {
		zapLogger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	loanHandler *handler.LoanHandler,
	assetHandler *handler.AssetHandler,
	inventoryHandler *handler.InventoryHandler,
	salesHandler *handler.SalesHandler,
	manufacturingHandler *handler.ManufacturingHandler,
	landHandler *handler.LandHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Loans
	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans", loanHandler.ListLoans).Methods("GET")
	api.HandleFunc("/loans/number/{loanNumber}", loanHandler.GetLoanByNumber).Methods("GET")
	api.HandleFunc("/loans/{loanId}", loanHandler.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{loanId}/payments", loanHandler.PaymentHistory).Methods("GET")
	api.HandleFunc("/loans/{loanId}/schedule", loanHandler.GetSchedule).Methods("GET")
	api.HandleFunc("/loans/{loanId}/outstanding", loanHandler.GetOutstanding).Methods("GET")
	api.HandleFunc("/loans/{loanId}/payment", loanHandler.MakePayment).Methods("POST")

	// Assets
	api.HandleFunc("/assets", assetHandler.CreateAsset).Methods("POST")
	api.HandleFunc("/assets", assetHandler.ListAssets).Methods("GET")
	api.HandleFunc("/assets/depreciation", assetHandler.DepreciationReport).Methods("GET")
	api.HandleFunc("/assets/categories", assetHandler.CreateCategory).Methods("POST")
	api.HandleFunc("/assets/categories", assetHandler.ListCategories).Methods("GET")
	api.HandleFunc("/assets/{assetId}", assetHandler.GetAsset).Methods("GET")
	api.HandleFunc("/assets/{assetId}", assetHandler.UpdateAsset).Methods("PUT")
	api.HandleFunc("/assets/{assetId}", assetHandler.DeleteAsset).Methods("DELETE")

	// Inventory
	api.HandleFunc("/inventory", inventoryHandler.CreateItem).Methods("POST")
	api.HandleFunc("/inventory", inventoryHandler.ListItems).Methods("GET")
	api.HandleFunc("/inventory/{itemId}", inventoryHandler.GetItem).Methods("GET")
	api.HandleFunc("/inventory/{itemId}", inventoryHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/inventory/{itemId}", inventoryHandler.DeleteItem).Methods("DELETE")
	api.HandleFunc("/inventory/{itemId}/movements", inventoryHandler.RecordMovement).Methods("POST")
	api.HandleFunc("/inventory/{itemId}/movements", inventoryHandler.ListMovements).Methods("GET")

	// Sales
	api.HandleFunc("/sales", salesHandler.CreateInvoice).Methods("POST")
	api.HandleFunc("/sales", salesHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/sales/{invoiceId}", salesHandler.GetInvoice).Methods("GET")

	// Manufacturing
	api.HandleFunc("/manufacturing", manufacturingHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/manufacturing", manufacturingHandler.ListOrders).Methods("GET")
	api.HandleFunc("/manufacturing/{orderId}", manufacturingHandler.GetOrder).Methods("GET")
	api.HandleFunc("/manufacturing/{orderId}", manufacturingHandler.UpdateOrder).Methods("PUT")
	api.HandleFunc("/manufacturing/{orderId}", manufacturingHandler.DeleteOrder).Methods("DELETE")

	// Lands
	api.HandleFunc("/lands", landHandler.CreateLand).Methods("POST")
	api.HandleFunc("/lands", landHandler.ListLands).Methods("GET")
	api.HandleFunc("/lands/{landId}", landHandler.GetLand).Methods("GET")
	api.HandleFunc("/lands/{landId}", landHandler.UpdateLand).Methods("PUT")
	api.HandleFunc("/lands/{landId}/assign", landHandler.AssignContractor).Methods("POST")

	// Reports
	api.HandleFunc("/reports/dashboard", reportHandler.Dashboard).Methods("GET")
	api.HandleFunc("/reports/revenue", reportHandler.RevenueSeries).Methods("GET")

	return router
}
