package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "smartfin-backend/internal/adapter/http"
	"smartfin-backend/internal/adapter/middleware"
	"smartfin-backend/internal/adapter/repository/mysql"
	"smartfin-backend/internal/config"
	loanDomain "smartfin-backend/internal/domain/loan"
	metricsDomain "smartfin-backend/internal/domain/metrics"
	paymentDomain "smartfin-backend/internal/domain/payment"
	scoreDomain "smartfin-backend/internal/domain/score"
	"smartfin-backend/internal/infrastructure/cache"
	"smartfin-backend/internal/infrastructure/db"
	"smartfin-backend/internal/infrastructure/predictor"
	"smartfin-backend/internal/usecase/ledger"
	"smartfin-backend/internal/usecase/metrics"
	"smartfin-backend/internal/usecase/payment"
	"smartfin-backend/internal/usecase/score"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&loanDomain.Loan{},
		&paymentDomain.Payment{},
		&metricsDomain.Snapshot{},
		&scoreDomain.HistoryEntry{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories
	loanRepo := mysql.NewLoanRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	metricsRepo := mysql.NewMetricsRepository(gdb)
	historyRepo := mysql.NewScoreHistoryRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	// usecases
	ledgerUC := ledger.NewUsecase(loanRepo)
	paymentUC := payment.NewUsecase(loanRepo, paymentRepo, guow)
	engine := metrics.NewEngine(loanRepo, paymentRepo, metricsRepo)
	scoreUC := score.NewUsecase(engine, historyRepo, predictor.NewClient(cfg.PredictorURL))

	// handlers
	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(ledgerUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)
	metricsH := httpadp.NewMetricsHandler(engine)
	scoreH := httpadp.NewScoreHandler(scoreUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/users/:user_id/loans", loanH.CreateLoan, idemp)
	e.GET("/users/:user_id/loans", loanH.ListLoans)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.PUT("/users/:user_id/loans/:loan_id", loanH.UpdateLoan, idemp)
	e.DELETE("/users/:user_id/loans/:loan_id", loanH.DeleteLoan, idemp)

	e.POST("/loans/:loan_id/payments", paymentH.RecordPayment, idemp)
	e.GET("/loans/:loan_id/payments", paymentH.GetPaymentHistory)
	e.DELETE("/loans/:loan_id/payments/:payment_id", paymentH.DeletePayment, idemp)

	e.GET("/users/:user_id/metrics", metricsH.ComputeMetrics)

	e.POST("/users/:user_id/financial-health", scoreH.ComputeScore)
	e.POST("/users/:user_id/financial-health/breakdown", scoreH.ScoreBreakdown)
	e.POST("/users/:user_id/financial-health/delta", scoreH.ScoreDelta)
	e.GET("/users/:user_id/financial-health/history", scoreH.ScoreHistory)
	e.POST("/predict", scoreH.Predict)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
