package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retail-bank/internal/api/handler"
	mw "retail-bank/internal/api/middleware"
	"retail-bank/internal/config"
	"retail-bank/internal/domain/bank"
)

func SetupRouter(bankService bank.BankService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupBankRoutes(router, bankService, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupBankRoutes(router *chi.Mux, bankService bank.BankService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewBankHandler(bankService, logger)
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/accounts", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.OpenAccount)
		r.Post("/existing", h.OpenAdditionalAccount)
		r.Get("/", h.ListAccountsByName)
		r.Route("/{accountNumber}", func(r chi.Router) {
			r.Get("/", h.GetAccount)
			r.Get("/statement", h.GetStatement)
			r.Get("/transactions", h.ListTransactions)
			r.Post("/deposits", h.Deposit)
			r.Post("/withdrawals", h.Withdraw)
			r.Post("/interest", h.PostInterest)
		})
	})

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Put("/{customerID}", h.UpdateCustomer)
	})
}
