package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminBusinessesHandler "github.com/janjikita/booking-service/internal/api/handlers/admin_businesses"
	confirmRescheduleHandler "github.com/janjikita/booking-service/internal/api/handlers/confirm_reschedule"
	createAppointmentHandler "github.com/janjikita/booking-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/janjikita/booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/janjikita/booking-service/internal/api/handlers/get_available_slots"
	getBookingPageHandler "github.com/janjikita/booking-service/internal/api/handlers/get_booking_page"
	getBusinessAppointmentsHandler "github.com/janjikita/booking-service/internal/api/handlers/get_business_appointments"
	manageBusinessHandler "github.com/janjikita/booking-service/internal/api/handlers/manage_business"
	manageServicesHandler "github.com/janjikita/booking-service/internal/api/handlers/manage_services"
	manageStaffHandler "github.com/janjikita/booking-service/internal/api/handlers/manage_staff"
	onboardBusinessHandler "github.com/janjikita/booking-service/internal/api/handlers/onboard_business"
	requestRescheduleHandler "github.com/janjikita/booking-service/internal/api/handlers/request_reschedule"
	suggestRescheduleSlotHandler "github.com/janjikita/booking-service/internal/api/handlers/suggest_reschedule_slot"
	updateAppointmentStatusHandler "github.com/janjikita/booking-service/internal/api/handlers/update_appointment_status"
	"github.com/janjikita/booking-service/internal/api/middleware"
	"github.com/janjikita/booking-service/internal/config"
	appointmentRepo "github.com/janjikita/booking-service/internal/infra/storage/appointment"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
	customerRepo "github.com/janjikita/booking-service/internal/infra/storage/customer"
	"github.com/janjikita/booking-service/internal/integrations/mailer"
	"github.com/janjikita/booking-service/internal/integrations/notifier"
	appointmentsService "github.com/janjikita/booking-service/internal/service/appointments"
	businessService "github.com/janjikita/booking-service/internal/service/business"
	catalogService "github.com/janjikita/booking-service/internal/service/catalog"
	confirmRescheduleUC "github.com/janjikita/booking-service/internal/usecase/confirm_reschedule"
	createAppointmentUC "github.com/janjikita/booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/janjikita/booking-service/internal/usecase/get_available_slots"
	"github.com/janjikita/booking-service/pkg/dbmetrics"
	"github.com/janjikita/booking-service/pkg/logger"
	"github.com/janjikita/booking-service/pkg/metrics"
	"github.com/janjikita/booking-service/pkg/simpletxmanager"
	"github.com/janjikita/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting JanjiKita booking service...")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		appointmentRepository *appointmentRepo.Repository
		businessRepository    *businessRepo.Repository
		catalogRepository     *catalogRepo.Repository
		customerRepository    *customerRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	hub := notifier.NewHub(log)
	mail := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)

	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		hub,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		businessRepository,
		log,
	)
	businessSvc := businessService.NewService(
		businessRepository,
		catalogRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		catalogRepository,
		appointmentRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		businessRepository,
		catalogRepository,
		customerRepository,
		appointmentRepository,
		txMgr,
		hub,
		mail,
		log,
	)
	confirmRescheduleUseCase := confirmRescheduleUC.NewUseCase(
		appointmentRepository,
		txMgr,
		hub,
		log,
	)

	onboardBusiness := onboardBusinessHandler.NewHandler(businessSvc, log)
	getBookingPage := getBookingPageHandler.NewHandler(businessSvc, appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	requestReschedule := requestRescheduleHandler.NewHandler(appointmentsSvc, log)
	suggestRescheduleSlot := suggestRescheduleSlotHandler.NewHandler(appointmentsSvc, log)
	confirmReschedule := confirmRescheduleHandler.NewHandler(confirmRescheduleUseCase, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentsSvc, log)
	manageBusiness := manageBusinessHandler.NewHandler(businessSvc, catalogSvc, log)
	manageServices := manageServicesHandler.NewHandler(catalogSvc, log)
	manageStaff := manageStaffHandler.NewHandler(catalogSvc, log)
	adminBusinesses := adminBusinessesHandler.NewHandler(businessSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: onboarding and the customer-facing booking flow.
	api.HandleFunc("/businesses", onboardBusiness.Handle).Methods(http.MethodPost)
	api.HandleFunc("/public/{slug}", getBookingPage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/{slug}/appointments", getBookingPage.HandleCustomerAppointments).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/reschedule-request", requestReschedule.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/confirm-reschedule", confirmReschedule.Handle).Methods(http.MethodPost)

	// Business owner routes: require a token for the business in the path.
	protected := api.PathPrefix("/businesses/{businessId}").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	protected.HandleFunc("", manageBusiness.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("", manageBusiness.HandleUpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/hours", manageBusiness.HandleGetHours).Methods(http.MethodGet)
	protected.HandleFunc("/hours", manageBusiness.HandleUpdateHours).Methods(http.MethodPut)
	protected.HandleFunc("/subscription", manageBusiness.HandleChangeSubscription).Methods(http.MethodPost)
	protected.HandleFunc("/capacity", manageBusiness.HandleCapacity).Methods(http.MethodGet)

	protected.HandleFunc("/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stats", getBusinessAppointments.HandleStats).Methods(http.MethodGet)

	protected.HandleFunc("/services", manageServices.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services", manageServices.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageServices.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}/active", manageServices.HandleSetActive).Methods(http.MethodPatch)

	protected.HandleFunc("/staff", manageStaff.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/staff", manageStaff.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}", manageStaff.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/active", manageStaff.HandleSetActive).Methods(http.MethodPatch)

	// Owner actions on appointments: the ownership check happens in the
	// service layer, the token only has to be valid.
	ownerAppointments := api.PathPrefix("/appointments/{id}").Subrouter()
	ownerAppointments.Use(middleware.Auth(cfg.Auth.JWTSecret))
	ownerAppointments.HandleFunc("/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	ownerAppointments.HandleFunc("/payment", updateAppointmentStatus.HandlePayment).Methods(http.MethodPatch)
	ownerAppointments.HandleFunc("/suggest-slot", suggestRescheduleSlot.Handle).Methods(http.MethodPost)

	// Admin routes.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(cfg.Auth.JWTSecret))
	admin.HandleFunc("/businesses", adminBusinesses.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/businesses/{businessId}/active", adminBusinesses.HandleSetActive).Methods(http.MethodPatch)
	admin.HandleFunc("/stats", adminBusinesses.HandleStats).Methods(http.MethodGet)

	// Websocket feed for dashboards (businessId) and customers (customerId).
	r.Handle("/ws", hub).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
