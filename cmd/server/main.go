package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Succession-Service-Backend/internal/api"
	"github.com/ndewijer/Succession-Service-Backend/internal/config"
	"github.com/ndewijer/Succession-Service-Backend/internal/database"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	dependantRepo := repository.NewDependantRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)
	guardianshipRepo := repository.NewGuardianshipRepository(db)
	caseStatusRepo := repository.NewCaseStatusRepository(db)

	systemService := service.NewSystemService(db)
	// Create services
	intestateService := service.NewIntestateService()
	polygamousService := service.NewPolygamousService(intestateService)
	successionService := service.NewSuccessionService(
		intestateService,
		polygamousService,
		distributionRepo,
	)
	dependencyService := service.NewDependencyService(dependantRepo)
	guardianshipService := service.NewGuardianshipService(guardianshipRepo)
	complianceService := service.NewComplianceService(dependantRepo, caseStatusRepo)
	evidenceTokenService, err := service.NewEvidenceTokenService(cfg.Evidence.SealingKey, cfg.Evidence.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize evidence token service: %v", err)
	}

	// Nightly compliance sweep
	scheduler := cron.New()
	if cfg.Scheduler.ComplianceSweepEnabled {
		_, err := scheduler.AddFunc(cfg.Scheduler.ComplianceSweepCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if _, err := complianceService.RunSweep(ctx); err != nil {
				log.Printf("Compliance sweep failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Failed to schedule compliance sweep: %v", err)
		}
		scheduler.Start()
		log.Printf("Compliance sweep scheduled: %s", cfg.Scheduler.ComplianceSweepCron)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:        systemService,
		Succession:    successionService,
		Dependency:    dependencyService,
		EvidenceToken: evidenceTokenService,
		Guardianship:  guardianshipService,
		Compliance:    complianceService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
