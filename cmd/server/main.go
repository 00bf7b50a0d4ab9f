package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "fundledger-backend/internal/api/http"
	"fundledger-backend/internal/config"
	"fundledger-backend/internal/logger"
	"fundledger-backend/internal/repository/postgres"
	"fundledger-backend/internal/security"
	"fundledger-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fundledger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	txManager := postgres.NewTxManager(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Notifier
	notifier := service.NewSendGridNotifier(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	auditSvc := service.NewAuditService(store.AuditRepository)
	referenceSvc := service.NewReferenceService(store.MemberRepository)
	matchingSvc := service.NewPaymentMatchingService(store.PaymentRepository, store.MemberRepository)
	carryForwardSvc := service.NewCarryForwardService(
		store.PaymentRepository,
		store.MemberRepository,
		store.DepartmentRepository,
	)
	claimSvc := service.NewClaimService(
		store.ClaimRepository,
		store.PaymentRepository,
		store.MemberRepository,
		txManager,
	)
	withdrawalSvc := service.NewWithdrawalService(
		store.WithdrawalRepository,
		store.OTPRepository,
		store.DepartmentRepository,
		store.UserRepository,
		notifier,
		auditSvc,
	)
	inviteSvc := service.NewInviteService(
		store.InviteRepository,
		store.MemberRepository,
		store.DepartmentRepository,
		store.UserRepository,
		referenceSvc,
		tokenManager,
		notifier,
		cfg.Invite.BaseURL,
	)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Payments:    httpapi.NewPaymentHandler(matchingSvc),
		Claims:      httpapi.NewClaimHandler(claimSvc),
		Withdrawals: httpapi.NewWithdrawalHandler(withdrawalSvc),
		Invites:     httpapi.NewInviteHandler(inviteSvc),
		Reports:     httpapi.NewReportHandler(carryForwardSvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
