package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/config"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/handlers"
	"github.com/cobreline/workforce-engine/pkg/middleware"
	"github.com/cobreline/workforce-engine/pkg/repositories"
	"github.com/cobreline/workforce-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.Database.Database),
		zap.String("db_host", cfg.Database.Host))

	ctx := context.Background()

	// Migrations run over database/sql; the engine itself uses pgx pools.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:             cfg.Database.ConnectionString(),
		MaxConnections:  cfg.Database.MaxConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	catalogRepo := repositories.NewCatalogRepository(db)
	dotationRepo := repositories.NewDotationRepository(db)
	gapRepo := repositories.NewTrainingGapRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	complianceRepo := repositories.NewComplianceRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Services
	auditService := services.NewAuditService(auditRepo, logger)
	staffingService := services.NewStaffingService(catalogRepo, dotationRepo, auditService, logger)
	gapService := services.NewGapAnalysisService(catalogRepo, gapRepo, auditService, logger)
	budgetService := services.NewBudgetService(catalogRepo, dotationRepo, budgetRepo, auditService, logger)
	complianceService := services.NewComplianceService(catalogRepo, dotationRepo, budgetRepo, complianceRepo, auditService, logger)
	assignmentService := services.NewAssignmentService(catalogRepo, dotationRepo, assignmentRepo, auditService, logger)
	resetService := services.NewResetService(db, dotationRepo, gapRepo, budgetRepo,
		complianceRepo, assignmentRepo, auditRepo, auditService, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewPlanHandler(staffingService, gapService, budgetService, complianceService, resetService, logger).RegisterRoutes(mux)
	handlers.NewAssignmentHandler(assignmentService, logger).RegisterRoutes(mux)
	handlers.NewAuditHandler(auditService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting workforce-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
