package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/config"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/handlers"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Remote API client; the session token rides in the request context.
	api := namelab.NewClient(cfg.APIBaseURL)

	// Local activity log
	auditLog, err := audit.Open(cfg.AuditDBPath)
	if err != nil {
		slog.Error("Failed to open audit log", "error", err)
		os.Exit(1)
	}
	defer auditLog.Close()
	if err := auditLog.InitSchema(); err != nil {
		slog.Error("Failed to init audit schema", "error", err)
		os.Exit(1)
	}

	// Session Setup
	sessions := session.NewManager(cfg.SessionKey, cfg.CookieSecure, cfg.CookieDomain)

	// Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(cfg.TemplateDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// Setup Handlers
	authHandler := &handlers.AuthHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
	}
	dashboardHandler := &handlers.DashboardHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
		Audit:     auditLog,
	}
	packageHandler := &handlers.PackageHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
		Audit:     auditLog,
	}
	orderHandler := &handlers.OrderHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
		Audit:     auditLog,
	}
	adminHandler := &handlers.AdminHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
		Audit:     auditLog,
	}
	submissionHandler := &handlers.SubmissionHandler{
		API:       api,
		Sessions:  sessions,
		Templates: templates,
		Audit:     auditLog,
	}

	mux := http.NewServeMux()

	// Rate Limiter for login attempts
	rateLimiter := handlers.NewRateLimiter(5 * time.Second)

	// Public Routes
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/logout", authHandler.Logout)

	// Protected Routes
	auth := authHandler.RequireAuth

	mux.HandleFunc("/dashboard", auth(dashboardHandler.Show))

	mux.HandleFunc("/packages", auth(packageHandler.List))
	mux.HandleFunc("/packages/new", auth(packageHandler.NewForm))
	mux.HandleFunc("POST /packages", auth(packageHandler.Create))
	mux.HandleFunc("/packages/edit", auth(packageHandler.EditForm))
	mux.HandleFunc("POST /packages/update", auth(packageHandler.Update))
	mux.HandleFunc("POST /packages/update/apply", auth(packageHandler.UpdateApply))
	mux.HandleFunc("/packages/delete", auth(packageHandler.DeleteConfirm))
	mux.HandleFunc("POST /packages/delete", auth(packageHandler.Delete))

	mux.HandleFunc("/orders", auth(orderHandler.List))
	mux.HandleFunc("/orders/new", auth(orderHandler.NewForm))
	mux.HandleFunc("POST /orders", auth(orderHandler.Create))
	mux.HandleFunc("/orders/edit", auth(orderHandler.EditForm))
	mux.HandleFunc("POST /orders/update", auth(orderHandler.Update))
	mux.HandleFunc("/orders/delete", auth(orderHandler.DeleteConfirm))
	mux.HandleFunc("POST /orders/delete", auth(orderHandler.Delete))
	mux.HandleFunc("POST /orders/confirm", auth(orderHandler.Confirm))
	mux.HandleFunc("POST /orders/upload", auth(orderHandler.UploadPDF))
	mux.HandleFunc("/orders/download", auth(orderHandler.DownloadPDF))

	mux.HandleFunc("/admins", auth(adminHandler.List))
	mux.HandleFunc("/admins/new", auth(adminHandler.NewForm))
	mux.HandleFunc("POST /admins", auth(adminHandler.Create))
	mux.HandleFunc("/admins/reset", auth(adminHandler.ResetForm))
	mux.HandleFunc("POST /admins/reset", auth(adminHandler.ResetPassword))

	mux.HandleFunc("/submissions", auth(submissionHandler.List))
	mux.HandleFunc("/submissions/edit", auth(submissionHandler.EditForm))
	mux.HandleFunc("POST /submissions/update", auth(submissionHandler.Update))
	mux.HandleFunc("/submissions/download-admin", auth(submissionHandler.DownloadAdminPDF))
	mux.HandleFunc("/submissions/download-user", auth(submissionHandler.DownloadUserPDF))

	// Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Admin console starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
