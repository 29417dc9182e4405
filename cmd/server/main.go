package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rickychen930/sing4you-sub002/internal/auth"
	"github.com/Rickychen930/sing4you-sub002/internal/config"
	"github.com/Rickychen930/sing4you-sub002/internal/handlers"
	"github.com/Rickychen930/sing4you-sub002/internal/invoice"
	"github.com/Rickychen930/sing4you-sub002/internal/notify"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

func main() {
	// Configure slog as early as possible in main.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB. A failure here is not fatal: public content degrades to
	// the read-only fallback, auth degrades to the built-in identity, and
	// invoice mutations refuse outright rather than fabricating financial
	// records in memory.
	var db *store.Store
	var contentReader store.ContentReader
	db, err = store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open store, continuing with read-only fallback content", "error", err)
		db = nil
		contentReader = store.NewFallback()
	} else {
		if err := db.InitSchema(); err != nil {
			slog.Error("Failed to initialize schema", "error", err)
			os.Exit(1)
		}
		contentReader = db
	}

	// 3. Services
	tokens := auth.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService, err := auth.NewService(db, tokens, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, logger)
	if err != nil {
		slog.Error("Failed to initialize auth service", "error", err)
		os.Exit(1)
	}
	invoiceService := invoice.NewService(db, logger)

	// 4. Handlers
	authHandler := &handlers.AuthHandler{
		Auth:         authService,
		RefreshTTL:   cfg.RefreshTokenTTL,
		CookieSecure: cfg.CookieSecure,
		CookieDomain: cfg.CookieDomain,
		Log:          logger,
	}
	invoiceHandler := &handlers.InvoiceHandler{Service: invoiceService, Log: logger}
	clientHandler := &handlers.ClientHandler{Store: db, Log: logger}
	contentHandler := &handlers.ContentHandler{Reader: contentReader, Store: db, Log: logger}
	contactHandler := &handlers.ContactHandler{Store: db, Notifier: &notify.LogNotifier{Log: logger}, Log: logger}
	mediaHandler := &handlers.MediaHandler{Store: db, UploadDir: cfg.UploadDir, Log: logger}

	// 5. Rate Limiters: a general policy over the whole API and a stricter
	// one on the credential endpoints. Distinct key prefixes keep their
	// counters apart.
	generalLimiter := handlers.NewRateLimiter(15*time.Minute, 100, "",
		"too many requests, please try again later")
	authLimiter := handlers.NewRateLimiter(15*time.Minute, 5, "auth:",
		"too many login attempts, please try again in 15 minutes")

	requireAuth := handlers.RequireAuth(tokens)

	api := http.NewServeMux()

	// Public routes
	api.HandleFunc("GET /api/performances", contentHandler.Performances)
	api.HandleFunc("GET /api/testimonials", contentHandler.Testimonials)
	api.HandleFunc("POST /api/contact", contactHandler.Submit)

	// Auth routes (credential endpoints carry the strict limiter)
	api.Handle("POST /api/auth/login", authLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	api.Handle("POST /api/auth/refresh", authLimiter.Middleware(http.HandlerFunc(authHandler.Refresh)))
	api.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Protected admin routes
	protected := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	api.Handle("POST /api/admin/invoices", protected(invoiceHandler.Create))
	api.Handle("GET /api/admin/invoices", protected(invoiceHandler.List))
	api.Handle("GET /api/admin/invoices/next-number", protected(invoiceHandler.NextNumber))
	api.Handle("GET /api/admin/invoices/{id}", protected(invoiceHandler.Get))
	api.Handle("GET /api/admin/invoices/{id}/pdf", protected(invoiceHandler.DownloadPDF))
	api.Handle("PUT /api/admin/invoices/{id}", protected(invoiceHandler.Update))
	api.Handle("DELETE /api/admin/invoices/{id}", protected(invoiceHandler.Delete))

	api.Handle("POST /api/admin/clients", protected(clientHandler.Create))
	api.Handle("GET /api/admin/clients", protected(clientHandler.List))
	api.Handle("GET /api/admin/clients/{id}", protected(clientHandler.Get))
	api.Handle("PUT /api/admin/clients/{id}", protected(clientHandler.Update))
	api.Handle("DELETE /api/admin/clients/{id}", protected(clientHandler.Delete))
	api.Handle("GET /api/admin/clients/{clientId}/invoices", protected(invoiceHandler.ByClient))

	api.Handle("POST /api/admin/performances", protected(contentHandler.CreatePerformance))
	api.Handle("PUT /api/admin/performances/{id}", protected(contentHandler.UpdatePerformance))
	api.Handle("DELETE /api/admin/performances/{id}", protected(contentHandler.DeletePerformance))

	api.Handle("POST /api/admin/media", protected(mediaHandler.Upload))

	mux := http.NewServeMux()
	mux.Handle("/api/", generalLimiter.Middleware(api))

	// Uploaded images
	mux.Handle("/uploads/", http.StripPrefix("/uploads", http.FileServer(http.Dir(cfg.UploadDir))))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	// 6. Middleware chain: Logger -> Security Headers -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(mux),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
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

	if db != nil {
		db.Close() //nolint:errcheck
	}

	slog.Info("Server exited gracefully.")
}
