package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caretiv/scheduling-service/internal/absence"
	"github.com/caretiv/scheduling-service/internal/audit"
	"github.com/caretiv/scheduling-service/internal/compliance"
	"github.com/caretiv/scheduling-service/internal/contract"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/holidayprofile"
	"github.com/caretiv/scheduling-service/internal/ical"
	"github.com/caretiv/scheduling-service/internal/notify"
	"github.com/caretiv/scheduling-service/internal/payroll"
	"github.com/caretiv/scheduling-service/internal/recurring"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/internal/shifttemplate"
	"github.com/caretiv/scheduling-service/pkg/config"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
	"github.com/caretiv/scheduling-service/pkg/messaging"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// schedulingSearchPath is the Postgres search_path this service's RLS
// transactions set before touching any table.
const schedulingSearchPath = "scheduling, public"

func main() {
	cfg, err := config.LoadWithValidation("scheduling-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("scheduling-service", cfg.Server.Environment)
	log.Info().Msg("starting Scheduling Service")

	db, err := database.NewWithSearchPath(&cfg.Database, schedulingSearchPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeSchedulingEvents, "scheduling-service", log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Repositories
	auditRepo := audit.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	contractRepo := contract.NewRepository(db)
	shiftTemplateRepo := shifttemplate.NewRepository(db)
	holidayProfileRepo := holidayprofile.NewRepository(db)
	recurringRepo := recurring.NewRepository(db)
	shiftRepo := shift.NewRepository(db)
	complianceRepo := compliance.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	absenceRepo := absence.NewRepository(db)
	notifyRepo := notify.NewRepository(db)

	// Cross-cutting services, built before the domain services that depend
	// on their narrow interfaces.
	auditService := audit.NewService(auditRepo)
	notifyService := notify.NewService(notifyRepo, publisher, log)
	complianceService := compliance.NewService(shiftRepo, employeeRepo, complianceRepo)

	// Domain services
	employeeService := employee.NewService(employeeRepo)
	contractService := contract.NewService(contractRepo, employeeRepo)
	shiftTemplateService := shifttemplate.NewService(shiftTemplateRepo)
	holidayProfileService := holidayprofile.NewService(holidayProfileRepo)
	recurringService := recurring.NewService(recurringRepo, shiftRepo, holidayProfileService)
	shiftService := shift.NewService(shiftRepo, complianceAdapter{complianceService}, auditService)
	payrollService := payroll.NewService(payrollRepo, employeeRepo, contractService, shiftRepo)
	absenceService := absence.NewService(absenceRepo, shiftRepo, payrollRepo, auditService, notifyService)
	icalService := ical.NewService(employeeRepo, shiftRepo, shiftTemplateRepo)

	// Handlers
	auditHandler := audit.NewHandler(auditService, log)
	employeeHandler := employee.NewHandler(employeeService, log)
	contractHandler := contract.NewHandler(contractService, log)
	shiftTemplateHandler := shifttemplate.NewHandler(shiftTemplateService, log)
	holidayProfileHandler := holidayprofile.NewHandler(holidayProfileService, log)
	recurringHandler := recurring.NewHandler(recurringService, log)
	shiftHandler := shift.NewHandler(shiftService, log)
	complianceHandler := compliance.NewHandler(complianceService, log)
	payrollHandler := payroll.NewHandler(payrollService, log)
	absenceHandler := absence.NewHandler(absenceService, log)
	notifyHandler := notify.NewHandler(notifyService, log)
	icalHandler := ical.NewHandler(icalService, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startReminderSweep(ctx, cfg, db, shiftRepo, employeeRepo, notifyService, log)
	startComplianceSweep(ctx, cfg, db, complianceService, log)
	startPayrollRollover(ctx, cfg, db, employeeRepo, payrollService, log)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "scheduling-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Public iCal feed: no tenant/actor middleware. The token in the URL is
	// the only credential, resolved inside icalService.Feed.
	r.Get("/calendar/{token}.ics", icalHandler.Feed)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httputil.TenantMiddleware)
		r.Use(httputil.ActorMiddleware)

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", shiftHandler.List)
			r.Post("/", shiftHandler.Create)
			r.Post("/bulk", shiftHandler.CreateBulk)
			r.Get("/{id}", shiftHandler.Get)
			r.Put("/{id}", shiftHandler.Update)
			r.Put("/{id}/self", shiftHandler.UpdateSelf)
			r.Post("/{id}/claim", shiftHandler.Claim)
			r.Post("/{id}/confirm", shiftHandler.Confirm)
			r.Post("/{id}/unconfirm", shiftHandler.Unconfirm)
			r.Post("/{id}/cancel", shiftHandler.Cancel)
			r.Post("/{id}/complete", shiftHandler.Complete)
		})

		r.Route("/shift-templates", func(r chi.Router) {
			r.Get("/", shiftTemplateHandler.List)
			r.Post("/", shiftTemplateHandler.Create)
			r.Get("/{id}", shiftTemplateHandler.Get)
			r.Put("/{id}", shiftTemplateHandler.Update)
			r.Delete("/{id}", shiftTemplateHandler.Delete)
		})

		r.Route("/recurring-shifts", func(r chi.Router) {
			r.Get("/", recurringHandler.List)
			r.Post("/", recurringHandler.Create)
			r.Post("/preview", recurringHandler.Preview)
			r.Get("/{id}", recurringHandler.Get)
			r.Put("/{id}", recurringHandler.Update)
			r.Post("/{id}/update-from", recurringHandler.UpdateFrom)
			r.Delete("/{id}", recurringHandler.Delete)
		})

		r.Route("/holiday-profiles", func(r chi.Router) {
			r.Get("/", holidayProfileHandler.List)
			r.Post("/", holidayProfileHandler.Create)
			r.Get("/active", holidayProfileHandler.GetActive)
			r.Get("/{id}", holidayProfileHandler.Get)
			r.Put("/{id}", holidayProfileHandler.Update)
			r.Post("/{id}/activate", holidayProfileHandler.Activate)
			r.Delete("/{id}", holidayProfileHandler.Delete)
			r.Post("/{id}/periods", holidayProfileHandler.AddVacationPeriod)
			r.Delete("/{id}/periods/{periodId}", holidayProfileHandler.RemoveVacationPeriod)
			r.Post("/{id}/custom-days", holidayProfileHandler.AddCustomHoliday)
			r.Delete("/{id}/custom-days/{holidayId}", holidayProfileHandler.RemoveCustomHoliday)
		})

		r.Route("/absences", func(r chi.Router) {
			r.Get("/", absenceHandler.List)
			r.Post("/", absenceHandler.Create)
			r.Put("/{id}", absenceHandler.Update)
		})
		r.Route("/care-absences", func(r chi.Router) {
			r.Get("/", absenceHandler.ListCareAbsences)
			r.Post("/", absenceHandler.CreateCareAbsence)
		})

		r.Route("/compliance", func(r chi.Router) {
			r.Get("/violations", complianceHandler.ListViolations)
			r.Post("/run", complianceHandler.Run)
			r.Post("/shifts/{shiftId}/reevaluate", complianceHandler.Reevaluate)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", payrollHandler.List)
			r.Post("/calculate", payrollHandler.Calculate)
			r.Post("/calculate-all", payrollHandler.Calculate)
			r.Get("/employee/{employeeId}", payrollHandler.ListForEmployee)
			r.Get("/{id}", payrollHandler.Get)
			r.Post("/{id}/approve", payrollHandler.Approve)
			r.Post("/{id}/reopen", payrollHandler.Reopen)
			r.Post("/{id}/mark-paid", payrollHandler.MarkPaid)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Get("/me", employeeHandler.GetMe)
			r.Put("/me", employeeHandler.UpdateMe)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
			r.Post("/{id}/ical-token/regenerate", employeeHandler.RegenerateICalToken)
			r.Route("/{employeeId}/contracts", func(r chi.Router) {
				r.Get("/", contractHandler.List)
				r.Post("/", contractHandler.Create)
			})
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", auditHandler.List)
		})

		// Dispatcher adapter callback routes: the adapter itself is the
		// caller here, not an end user, but it still arrives through the
		// gateway with the service's own tenant/actor headers.
		r.Route("/notifications", func(r chi.Router) {
			r.Post("/dispatch-outcome", notifyHandler.RecordOutcome)
			r.Get("/events/{eventId}", notifyHandler.ListForEvent)
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// complianceAdapter narrows compliance.Service.EvaluateAndPersist's
// (Result, error) return down to shift.ComplianceEvaluator's error-only
// signature: the shift state machine only needs to know whether the
// re-evaluation succeeded, not its findings.
type complianceAdapter struct {
	svc *compliance.Service
}

func (a complianceAdapter) EvaluateAndPersist(ctx context.Context, shiftID string) error {
	_, err := a.svc.EvaluateAndPersist(ctx, shiftID)
	return err
}

func allowedOrigins() []string {
	raw := os.Getenv("CARETIV_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	origins := make([]string, 0, 4)
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			if i > start {
				origins = append(origins, raw[start:i])
			}
			start = i + 1
		}
	}
	return origins
}
