package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/app"
	"github.com/rbc-health/malaria-dashboard/internal/config"
	"github.com/rbc-health/malaria-dashboard/internal/dashboard"
	"github.com/rbc-health/malaria-dashboard/internal/logging"
	"github.com/rbc-health/malaria-dashboard/internal/middleware"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	if err := run(http.ListenAndServe); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and blocks in listen. Deferred cleanup runs before it
// returns, including on a listen failure.
func run(listen func(addr string, h http.Handler) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	loader, cleanup, err := app.NewLoader(cfg, logger)
	if err != nil {
		// The process stays up and reports the data as unavailable.
		logger.Error("case source unavailable", zap.Error(err))
	}
	defer cleanup()

	api, page := dashboard.UnavailableRoutes(), dashboard.Pages(false)
	if loader != nil {
		api, page = dashboard.Init(context.Background(), loader, logger)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(logging.Component(logger, "http")))
	r.Use(middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst))

	r.Get("/healthz", HealthHandler)
	r.Handle("/", page)
	r.Mount("/api", api)

	addr := "0.0.0.0:" + cfg.Port
	logger.Info("server listening", zap.String("addr", addr))
	if err := listen(addr, r); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}
