package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beaverschoice/supply-service/config"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"

	"github.com/beaverschoice/supply-service/internal/lock"

	catalogH "github.com/beaverschoice/supply-service/internal/catalog/handler"
	catalogRepoPkg "github.com/beaverschoice/supply-service/internal/catalog/repository"
	catalogUCPkg "github.com/beaverschoice/supply-service/internal/catalog/usecase"

	ledgerH "github.com/beaverschoice/supply-service/internal/ledger/handler"
	ledgerRepoPkg "github.com/beaverschoice/supply-service/internal/ledger/repository"
	ledgerUCPkg "github.com/beaverschoice/supply-service/internal/ledger/usecase"

	quotingH "github.com/beaverschoice/supply-service/internal/quoting/handler"
	quotingRepoPkg "github.com/beaverschoice/supply-service/internal/quoting/repository"
	quotingUCPkg "github.com/beaverschoice/supply-service/internal/quoting/usecase"

	supplyH "github.com/beaverschoice/supply-service/internal/supply/handler"
	supplyUCPkg "github.com/beaverschoice/supply-service/internal/supply/usecase"

	fulfillmentH "github.com/beaverschoice/supply-service/internal/fulfillment/handler"
	fulfillmentListenerPkg "github.com/beaverschoice/supply-service/internal/fulfillment/listener"
	fulfillmentUCPkg "github.com/beaverschoice/supply-service/internal/fulfillment/usecase"

	financeH "github.com/beaverschoice/supply-service/internal/finance/handler"
	financeUCPkg "github.com/beaverschoice/supply-service/internal/finance/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	// SQLite allows one writer at a time; a single pooled connection keeps
	// appends serialized and id assignment consistent.
	db, err := sqlx.Connect("sqlite", cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("could not open database", zap.Error(err))
	}
	db.SetMaxOpenConns(1)
	defer db.Close()
	appLogger.Info("connected to SQLite database", zap.String("path", cfg.SQLite.Path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledgerRepo := ledgerRepoPkg.NewSQLiteRepository(db)
	catalogRepo := catalogRepoPkg.NewSQLiteRepository(db)
	history := quotingRepoPkg.NewSQLiteHistory(db)
	for _, migrate := range []func(context.Context) error{
		ledgerRepo.EnsureSchema, catalogRepo.EnsureSchema, history.EnsureSchema,
	} {
		if err := migrate(ctx); err != nil {
			appLogger.Fatal("schema migration failed", zap.Error(err))
		}
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient)
		appLogger.Info("using redis order lock", zap.String("addr", cfg.Redis.Addr))
	}

	catalogUC := catalogUCPkg.NewCatalogUsecase(catalogRepo, ledgerRepo, seedParams(cfg, appLogger), appLogger)
	if err := catalogUC.Bootstrap(ctx); err != nil {
		appLogger.Fatal("bootstrap failed", zap.Error(err))
	}

	ledgerUC := ledgerUCPkg.NewLedgerUsecase(ledgerRepo, catalogRepo, appLogger)
	quotingUC := quotingUCPkg.NewQuotingUsecase(catalogRepo, history, appLogger)
	supplyUC := supplyUCPkg.NewSupplyUsecase(ledgerRepo, catalogRepo, appLogger)
	fulfillmentUC := fulfillmentUCPkg.NewFulfillmentUsecase(ledgerRepo, quotingUC, supplyUC, locker, appLogger)
	financeUC := financeUCPkg.NewFinanceUsecase(ledgerUC, appLogger)

	if cfg.Kafka.Enabled {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer reader.Close()
		listener := fulfillmentListenerPkg.NewOrderListener(reader, fulfillmentUC, appLogger)
		go listener.Start(ctx)
		appLogger.Info("order listener started",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	validate := validator.New()

	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	ledgerH.NewHandler(ledgerUC, validate, appLogger).MapRoutes(v1.Group("/ledger"))
	catalogH.NewHandler(catalogUC, appLogger).MapRoutes(v1.Group("/catalog"))
	quotingH.NewHandler(quotingUC, validate, appLogger).MapRoutes(v1.Group("/quotes"))
	supplyH.NewHandler(supplyUC, validate, appLogger).MapRoutes(v1.Group("/reorders"))
	fulfillmentH.NewHandler(fulfillmentUC, validate, appLogger).MapRoutes(v1.Group("/orders"))
	financeH.NewHandler(financeUC, appLogger).MapRoutes(v1.Group("/reports"))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown error", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Server.AppEnv == "dev" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Encoding = cfg.Logger.Encoding
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace
	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}

func seedParams(cfg *config.Config, logger *zap.Logger) catalogUCPkg.SeedParams {
	cash, err := decimal.NewFromString(cfg.Seed.OpeningCash)
	if err != nil {
		logger.Warn("invalid opening cash, defaulting to 50000.00",
			zap.String("raw", cfg.Seed.OpeningCash))
		cash = decimal.NewFromInt(50000)
	}
	openingDate, err := time.Parse("2006-01-02", cfg.Seed.OpeningDate)
	if err != nil {
		logger.Warn("invalid opening date, defaulting to 2025-01-01",
			zap.String("raw", cfg.Seed.OpeningDate))
		openingDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return catalogUCPkg.SeedParams{
		InventoryCoverage: cfg.Seed.InventoryCoverage,
		RandSeed:          cfg.Seed.RandSeed,
		OpeningCash:       cash,
		OpeningDate:       openingDate,
	}
}
