package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio_landing_go/config"
	"studio_landing_go/handlers"
	"studio_landing_go/middleware"
	"studio_landing_go/services"
	"studio_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	if missing := cfg.MissingRelaySettings(); len(missing) > 0 {
		log.Printf("[WARNING] Relay settings missing, submissions will fail: %v", missing)
	}

	middleware.InitAssetVersions()

	monitor := services.NewSecurityEventMonitor(services.SecurityAlertMailer(cfg))
	defer monitor.Stop()

	forwarder := services.NewLeadForwarder(
		services.NewRelayConfig(cfg),
		services.WithSecurityMonitor(monitor),
		services.WithMetrics(services.NewLeadMetrics(prometheus.DefaultRegisterer)),
	)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(middleware.Metrics(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSPNonce())

	e.Static("/static", "static")

	// Public pages
	e.GET("/", handlers.LandingHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)

	// Form endpoints
	e.POST("/api/send-tg", handlers.SendLeadHandler(forwarder))
	e.POST("/api/subscribe", handlers.SubscribeHandler(forwarder))
	e.POST("/htmx/lead/validate", handlers.ValidateLeadHandler)

	// Operations
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
