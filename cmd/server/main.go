package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/handlers"
	"metanoia_app_go/logger"
	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/services/jobs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment)

	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.LandingPage{},
		&models.Lead{},
		&models.ContactMessage{},
		&models.Talk{},
		&models.Course{},
		&models.Content{},
	); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		zlog.Error().Err(err).Msg("Failed to seed admin user")
	}

	if err := i18n.Load(); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load translations")
	}
	services.InitializeStorage(cfg)
	services.Monitor = services.NewLoginMonitor()
	middleware.InitAssetVersions()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	// Banner videos are the largest uploads
	e.Use(echomiddleware.BodyLimit("55M"))
	e.Use(middleware.CSPNonce())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg.IsProduction()))
	e.Use(middleware.AuditContext())

	e.Static("/static", middleware.StaticDir)
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/sitemap.xml", handlers.SitemapHandler)
	e.GET("/robots.txt", handlers.RobotsHandler)

	// Public site
	leadLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		Message:  "Muitas inscrições em sequência. Aguarde um minuto e tente novamente.",
	})
	contactLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		Message:  "Muitas mensagens em sequência. Aguarde um minuto e tente novamente.",
	})
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: 5,
		Window:   15 * time.Minute,
		Message:  "Muitas tentativas de login. Tente novamente mais tarde.",
	})

	e.GET("/", handlers.HomeHandler)
	e.POST("/contato", handlers.ContactPostHandler, contactLimiter.Middleware())
	e.GET("/lp/:slug", handlers.PublicLandingPageHandler)
	e.GET("/lp/:slug/form", handlers.PublicLeadFormHandler)
	e.POST("/lp/:slug/leads", handlers.PublicLeadSubmitHandler, leadLimiter.Middleware())

	e.GET("/login", handlers.LoginHandler)
	e.POST("/login", handlers.LoginPostHandler, loginLimiter.Middleware())
	e.POST("/logout", handlers.LogoutHandler, middleware.RequireAuth())

	// Admin console
	admin := e.Group("/admin")
	admin.Use(middleware.RequireAuth())
	admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
	{
		admin.GET("", handlers.DashboardHandler)
		admin.GET("/api/stats", handlers.DashboardStatsAPIHandler)

		admin.GET("/landing-pages", handlers.LandingPagesHandler)
		admin.GET("/landing-pages/new", handlers.NewLandingPageHandler)
		admin.GET("/landing-pages/slug", handlers.SlugPreviewHandler)
		admin.POST("/landing-pages", handlers.CreateLandingPageHandler)
		admin.GET("/landing-pages/:id/edit", handlers.EditLandingPageHandler)
		admin.POST("/landing-pages/:id", handlers.UpdateLandingPageHandler)
		admin.POST("/landing-pages/:id/toggle", handlers.ToggleLandingPageHandler)
		admin.GET("/landing-pages/:id/link", handlers.LandingPageLinkHandler)
		admin.GET("/landing-pages/:id/qrcode", handlers.LandingPageQRCodeHandler)

		admin.GET("/leads", handlers.LeadsHandler)
		admin.GET("/leads/export", handlers.ExportLeadsHandler)

		// Editors manage content, only admins delete pages
		adminOnly := admin.Group("", middleware.RequireRole(models.RoleAdmin))
		adminOnly.POST("/landing-pages/:id/delete", handlers.DeleteLandingPageHandler)
	}

	scheduler, err := jobs.StartScheduler(db.DB, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	go func() {
		zlog.Info().Str("port", cfg.ServerPort).Msg("Server starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zlog.Info().Msg("Shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("Graceful shutdown failed")
	}
	for _, rl := range []*middleware.RateLimiter{leadLimiter, contactLimiter, loginLimiter} {
		rl.Stop()
	}
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
