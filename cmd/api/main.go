// @title                       CongoMuv API
// @version                     1.0
// @description                 Bilhetagem de transporte: busca, reservas, pagamentos e relatórios por organização.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/docs"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	httphandlers "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/http"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/middleware"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/config"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/i18n"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/persistence/postgres"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/profilestore"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/realtime"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/security"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting congomuv backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger, !cfg.IsProduction())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get database handle", "error", err)
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Inicializar i18n
	i18nService, err := i18n.New(cfg.I18n.DefaultLanguage, cfg.I18n.LocalesDir)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Feed ao vivo
	hub := realtime.NewHub(logger)
	go func() {
		if err := hub.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("live hub failed", "error", err)
		}
	}()

	// Segurança
	tokens, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	if err != nil {
		logger.Error("failed to initialize token manager", "error", err)
		log.Fatal(err)
	}
	hasher := security.NewPasswordHasher(0)
	registry := entities.DefaultRoleRegistry()

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	lineRepo := postgres.NewLineRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	uow := postgres.NewUnitOfWork(db)

	var profiles ports.ProfileStore = userRepo
	if cfg.ProfileStore.URL != "" {
		profiles = profilestore.NewClient(profilestore.Config{
			BaseURL:    cfg.ProfileStore.URL,
			ServiceKey: cfg.ProfileStore.ServiceKey,
			Timeout:    cfg.ProfileStore.Timeout,
		}, logger)
		logger.Info("organization lookup via profile store", "url", cfg.ProfileStore.URL)
	}

	// Inicializar services
	authorizer := services.NewAuthorizer(registry, logger)
	scopes := services.NewScopeResolver(registry, profiles, logger)
	authService := services.NewAuthService(userRepo, registry, tokens, hasher, logger)
	userService := services.NewUserService(userRepo, registry, hasher, uow, logger)
	orgService := services.NewOrganizationService(orgRepo, logger)
	fleetService := services.NewFleetService(lineRepo, vehicleRepo, logger)
	tripService := services.NewTripService(tripRepo, lineRepo, vehicleRepo, hub, logger)
	bookingService := services.NewBookingService(bookingRepo, tripRepo, registry, uow, hub, logger)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, tripRepo, bookingService, uow, hub, logger)
	reportService := services.NewReportService(reportRepo, logger)

	if err := httphandlers.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	go limiter.Run(ctx, time.Minute)

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Logger:          logger,
		BaseURL:         cfg.Server.BaseURL,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		BodyLimitBytes:  cfg.Server.BodyLimitBytes,
		FrontendDistDir: cfg.Server.FrontendDistDir,

		Auth:        middleware.NewAuthMiddleware(tokens, authorizer, scopes, logger),
		I18n:        middleware.NewI18nMiddleware(i18nService),
		RateLimiter: limiter,

		Health:        httphandlers.NewHealthHandler(cfg.Env, sqlDB),
		Auths:         httphandlers.NewAuthHandler(authService, cfg.IsProduction()),
		Trips:         httphandlers.NewTripHandler(tripService),
		Bookings:      httphandlers.NewBookingHandler(bookingService, paymentService),
		Fleet:         httphandlers.NewFleetHandler(fleetService),
		Users:         httphandlers.NewUserHandler(userService),
		Organizations: httphandlers.NewOrganizationHandler(orgService),
		Reports:       httphandlers.NewReportHandler(reportService, !cfg.IsProduction()),
		Live:          httphandlers.NewLiveHandler(hub, realtime.NewUpgrader(cfg.CORS.AllowedOrigins), logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
