package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Succession-Service-Backend/internal/api/middleware"
	"github.com/ndewijer/Succession-Service-Backend/internal/config"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
)

// Services bundles the service dependencies the router hands to handlers.
type Services struct {
	System        *service.SystemService
	Succession    *service.SuccessionService
	Dependency    *service.DependencyService
	EvidenceToken *service.EvidenceTokenService
	Guardianship  *service.GuardianshipService
	Compliance    *service.ComplianceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/succession", func(r chi.Router) {
			successionHandler := handlers.NewSuccessionHandler(services.Succession)
			r.Post("/intestate", successionHandler.CalculateIntestate)
			r.Post("/polygamous", successionHandler.CalculatePolygamous)
			r.Route("/distribution/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", successionHandler.GetDistribution)
			})
		})

		r.Route("/dependants", func(r chi.Router) {
			dependantHandler := handlers.NewDependantHandler(services.Dependency, services.EvidenceToken)
			complianceHandler := handlers.NewComplianceHandler(services.Compliance, services.Dependency)

			r.Post("/", dependantHandler.Declare)

			r.Route("/deceased/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", dependantHandler.ListByDeceased)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", dependantHandler.Get)
				r.Post("/assessment", dependantHandler.Assess)
				r.Post("/evidence", dependantHandler.AddEvidence)
				r.Post("/claim", dependantHandler.FileClaim)
				r.Post("/court-order", dependantHandler.RecordCourtOrder)
				r.Get("/qualification", dependantHandler.Qualification)
				r.Get("/events", dependantHandler.AuditTrail)
				r.Get("/compliance", complianceHandler.DependantFindings)
			})
		})

		r.Route("/guardianship", func(r chi.Router) {
			guardianshipHandler := handlers.NewGuardianshipHandler(services.Guardianship)
			r.Post("/check", guardianshipHandler.Check)
		})

		r.Route("/compliance", func(r chi.Router) {
			complianceHandler := handlers.NewComplianceHandler(services.Compliance, services.Dependency)
			r.Route("/case/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", complianceHandler.CaseStatus)
				r.Get("/stored", complianceHandler.StoredCaseStatus)
			})
		})
	})

	return r
}
