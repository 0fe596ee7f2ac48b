package http

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/middleware"
)

// RouterConfig reúne o que o roteador precisa: middlewares, handlers e opções
type RouterConfig struct {
	Logger          ports.Logger
	BaseURL         string
	AllowedOrigins  []string
	BodyLimitBytes  int64
	FrontendDistDir string

	Auth        *middleware.AuthMiddleware
	I18n        *middleware.I18nMiddleware
	RateLimiter *middleware.RateLimiter

	Health        *HealthHandler
	Auths         *AuthHandler
	Trips         *TripHandler
	Bookings      *BookingHandler
	Fleet         *FleetHandler
	Users         *UserHandler
	Organizations *OrganizationHandler
	Reports       *ReportHandler
	Live          *LiveHandler
}

// NewRouter monta o engine gin com middlewares globais, rotas da API e rotas de página
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.BaseURL(cfg.BaseURL))
	router.Use(cfg.I18n.DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}
	if cfg.BodyLimitBytes > 0 {
		router.Use(middleware.BodyLimit(cfg.BodyLimitBytes))
	}

	router.GET("/health", cfg.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := cfg.Auth
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", cfg.Auths.Register)
			authGroup.POST("/login", cfg.Auths.Login)
			authGroup.GET("/me", append(auth.Gate(entities.RoleUser), cfg.Auths.Me)...)
		}

		trips := api.Group("/trips")
		{
			trips.GET("/search", cfg.Trips.Search)
			trips.GET("/:id", cfg.Trips.Get)
		}

		bookings := api.Group("/bookings", auth.Gate(entities.RoleUser)...)
		{
			bookings.POST("", cfg.Bookings.Create)
			bookings.GET("", cfg.Bookings.ListMine)
			bookings.GET("/:id", cfg.Bookings.Get)
			bookings.POST("/:id/cancel", cfg.Bookings.Cancel)
		}

		payments := api.Group("/payments", auth.Gate(entities.RoleUser)...)
		{
			payments.POST("", cfg.Bookings.InitiatePayment)
			payments.GET("/:id", cfg.Bookings.GetPayment)
		}

		operator := api.Group("/operator", auth.ScopedGate(entities.RoleOperator)...)
		{
			operator.GET("/dashboard", cfg.Reports.Dashboard)

			operator.GET("/lines", cfg.Fleet.ListLines)
			operator.POST("/lines", cfg.Fleet.CreateLine)
			operator.GET("/vehicles", cfg.Fleet.ListVehicles)
			operator.POST("/vehicles", cfg.Fleet.CreateVehicle)
			operator.PATCH("/vehicles/:id", cfg.Fleet.UpdateVehicle)

			operator.GET("/trips", cfg.Trips.List)
			operator.POST("/trips", cfg.Trips.Schedule)
			operator.PATCH("/trips/:id/status", cfg.Trips.ChangeStatus)

			operator.GET("/bookings", cfg.Bookings.ListForOrganization)
			operator.PATCH("/payments/:id/status", cfg.Bookings.UpdatePaymentStatus)

			operator.GET("/reports/revenue", cfg.Reports.Revenue)
			operator.GET("/reports/performance", cfg.Reports.Performance)
		}

		if cfg.Live != nil {
			live := append([]gin.HandlerFunc{middleware.BearerFromCookie()}, auth.ScopedGate(entities.RoleOperator)...)
			api.GET("/operator/live", append(live, cfg.Live.Stream)...)
		}

		admin := api.Group("/admin", auth.ScopedGate(entities.RoleAdmin)...)
		{
			admin.GET("/users", cfg.Users.ListUsers)
			admin.POST("/users", cfg.Users.CreateUser)
			admin.GET("/users/:id", cfg.Users.GetUser)
			admin.PATCH("/users/:id/role", cfg.Users.ChangeRole)
			admin.GET("/organization", cfg.Organizations.Current)
		}

		superadmin := api.Group("/superadmin", auth.Gate(entities.RoleSuperAdmin)...)
		{
			superadmin.GET("/organizations", cfg.Organizations.List)
			superadmin.POST("/organizations", cfg.Organizations.Create)
		}
	}

	page := spaPage(cfg.FrontendDistDir)
	router.GET("/dashboard", auth.RedirectToDashboard())
	router.GET("/passenger/*path", auth.RequireRoleOrRedirect(entities.RoleUser), page)
	router.GET("/operator/*path", auth.RequireRoleOrRedirect(entities.RoleOperator), page)
	router.GET("/admin/*path", auth.RequireRoleOrRedirect(entities.RoleAdmin), page)
	router.GET("/superadmin/*path", auth.RequireRoleOrRedirect(entities.RoleSuperAdmin), page)

	return router
}

// spaPage serve o index.html do build do frontend; sem build responde um stub JSON
func spaPage(distDir string) gin.HandlerFunc {
	if distDir == "" {
		return func(c *gin.Context) {
			identity, _ := middleware.GetIdentity(c)
			role := entities.RoleGuest
			if identity != nil {
				role = identity.Role
			}
			c.JSON(http.StatusOK, gin.H{
				"page": c.Request.URL.Path,
				"role": role,
			})
		}
	}

	index := filepath.Join(distDir, "index.html")
	return func(c *gin.Context) {
		c.File(index)
	}
}
