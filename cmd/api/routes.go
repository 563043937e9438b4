package main

import (
	"log"
	"net/http"

	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Static pages (dev only)
	mux.HandleFunc("/", httphandlers.HandleLandingPage)
	mux.HandleFunc("/login", httphandlers.HandleLoginPage)
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/signup", deps.AuthHandler.HandleSignup)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)
	mux.HandleFunc("/api/auth/reset-password", deps.AuthHandler.HandleResetPassword)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/tracker", authMiddleware(http.HandlerFunc(httphandlers.HandleTrackerPage)))
	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))
	mux.Handle("/api/income", authMiddleware(http.HandlerFunc(deps.LedgerHandler.HandleAddIncome)))
	mux.Handle("/api/expense", authMiddleware(http.HandlerFunc(deps.LedgerHandler.HandleAddExpense)))
	mux.Handle("/api/records", authMiddleware(http.HandlerFunc(deps.LedgerHandler.HandleRecords)))
	mux.Handle("/api/visualization-data", authMiddleware(http.HandlerFunc(deps.LedgerHandler.HandleVisualizationData)))
	mux.Handle("/api/summary/categories", authMiddleware(http.HandlerFunc(deps.LedgerHandler.HandleCategorySummary)))

	// Apply global middleware
	handler := middleware.CORS(cfg.Server.AllowedHosts)(mux)
	if cfg.Telemetry.Enabled {
		handler = middleware.Tracing(handler)
	}
	handler = middleware.RequestID(middleware.Logging(handler))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
