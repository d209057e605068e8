package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	financeapp "github.com/platebooks/backend/internal/application/finance"
	orderapp "github.com/platebooks/backend/internal/application/order"
	partnerapp "github.com/platebooks/backend/internal/application/partner"
	reportapp "github.com/platebooks/backend/internal/application/report"
	"github.com/platebooks/backend/internal/infrastructure/config"
	"github.com/platebooks/backend/internal/infrastructure/logger"
	"github.com/platebooks/backend/internal/infrastructure/persistence"
	"github.com/platebooks/backend/internal/interfaces/http/handler"
	"github.com/platebooks/backend/internal/interfaces/http/middleware"
	"github.com/platebooks/backend/internal/interfaces/http/router"
)

const maxRequestBody = 1 << 20 // 1 MiB

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Platebooks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	accountRepo := persistence.NewGormBankAccountRepository(db.DB)
	txnRepo := persistence.NewGormBankTransactionRepository(db.DB)
	txManager := persistence.NewTxManager(db.DB)

	// Application services
	customerSvc := partnerapp.NewCustomerService(customerRepo)
	supplierSvc := partnerapp.NewSupplierService(supplierRepo)
	orderSvc := orderapp.NewService(orderRepo, customerRepo)
	ledgerSvc := financeapp.NewLedgerService(incomeRepo, expenseRepo, accountRepo, txnRepo, txManager, log)
	accrualSvc := financeapp.NewAccrualService(incomeRepo, expenseRepo, customerRepo, supplierRepo, log)
	allocationSvc := financeapp.NewAllocationService(incomeRepo, expenseRepo, orderRepo, txManager, log)

	var reconOpts []financeapp.ReconciliationOption
	if cfg.Reconciliation.StrictAmountMatch {
		reconOpts = append(reconOpts, financeapp.WithStrictAmountMatch())
	}
	reconSvc := financeapp.NewReconciliationService(txnRepo, accountRepo, incomeRepo, expenseRepo, log, reconOpts...)

	reportSvc := reportapp.NewService(
		orderRepo, incomeRepo, expenseRepo, accountRepo, txnRepo,
		customerRepo, supplierRepo, reconSvc, redisClient, log,
	)

	// HTTP stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
		middleware.BodyLimit(maxRequestBody),
	)

	r := router.New(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCustomerHandler(customerSvc)).
		Register(handler.NewSupplierHandler(supplierSvc)).
		Register(handler.NewOrderHandler(orderSvc)).
		Register(handler.NewFinanceHandler(ledgerSvc, accrualSvc)).
		Register(handler.NewAllocationHandler(allocationSvc)).
		Register(handler.NewReconciliationHandler(reconSvc)).
		Register(handler.NewReportHandler(reportSvc, accrualSvc)).
		Register(handler.NewSystemHandler(db, redisClient))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
