package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	financeapp "github.com/pawnbook/backend/internal/application/finance"
	identityapp "github.com/pawnbook/backend/internal/application/identity"
	ledgerapp "github.com/pawnbook/backend/internal/application/ledger"
	lendingapp "github.com/pawnbook/backend/internal/application/lending"
	notificationapp "github.com/pawnbook/backend/internal/application/notification"
	partnerapp "github.com/pawnbook/backend/internal/application/partner"
	reportapp "github.com/pawnbook/backend/internal/application/report"
	tradingapp "github.com/pawnbook/backend/internal/application/trading"
	"github.com/pawnbook/backend/internal/infrastructure/auth"
	"github.com/pawnbook/backend/internal/infrastructure/cache"
	"github.com/pawnbook/backend/internal/infrastructure/config"
	"github.com/pawnbook/backend/internal/infrastructure/logger"
	"github.com/pawnbook/backend/internal/infrastructure/persistence"
	"github.com/pawnbook/backend/internal/infrastructure/scheduler"
	"github.com/pawnbook/backend/internal/interfaces/http/handler"
	"github.com/pawnbook/backend/internal/interfaces/http/middleware"
	"github.com/pawnbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(zapLogger, gormlogger.Warn))
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	tradeRepo := persistence.NewGormTradeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	reminderRepo := persistence.NewGormReminderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Idempotency store: Redis when configured, in-memory otherwise
	var idempotency lendingapp.IdempotencyStore
	if cfg.Cache.Backend == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			zapLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		idempotency = cache.NewRedisIdempotencyStore(redisClient, cfg.Cache.IdempotencyTTL)
	} else {
		idempotency = cache.NewMemoryIdempotencyStore(cfg.Cache.IdempotencyTTL)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	customerService := partnerapp.NewCustomerService(customerRepo)
	loanService := lendingapp.NewLoanService(accountRepo, customerRepo, entryRepo, idempotency, zapLogger)
	balanceService := ledgerapp.NewBalanceService(accountRepo, customerRepo, entryRepo, cfg.Ledger.HistoryPageSize, zapLogger)
	tradeService := tradingapp.NewTradeService(tradeRepo, entryRepo, zapLogger)
	expenseService := financeapp.NewExpenseService(expenseRepo, entryRepo, zapLogger)
	reminderService := notificationapp.NewReminderService(reminderRepo, accountRepo, zapLogger)
	dashboardService := reportapp.NewDashboardService(accountRepo, entryRepo, zapLogger)
	exportService := reportapp.NewExportService(customerRepo, accountRepo, tradeRepo, expenseRepo, entryRepo, zapLogger)
	authService := identityapp.NewAuthService(userRepo, jwtService, zapLogger)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.EnableJsonDecoderDisallowUnknownFields()
	if err := middleware.RegisterValidations(); err != nil {
		zapLogger.Fatal("failed to register validations", zap.Error(err))
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(zapLogger),
		logger.Recovery(zapLogger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.JWTAuth(jwtService,
			"/api/v1/auth/login",
			"/api/v1/system/health",
			"/api/v1/system/info",
		),
	)

	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)).
		Register(handler.NewCustomerHandler(customerService, balanceService)).
		Register(handler.NewLoanHandler(loanService)).
		Register(handler.NewLedgerHandler(balanceService)).
		Register(handler.NewTradeHandler(tradeService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewReportHandler(dashboardService, exportService)).
		Register(handler.NewReminderHandler(reminderService))
	r.Setup()

	// Reminder scheduler
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(reminderService, cfg.Scheduler.DailyCronSchedule, zapLogger)
		if err := sched.Start(); err != nil {
			zapLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zapLogger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
