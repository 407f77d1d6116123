package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/newsdesk/internal/auth"
	"github.com/crucial707/newsdesk/internal/config"
	"github.com/crucial707/newsdesk/internal/db"
	"github.com/crucial707/newsdesk/internal/handlers"
	"github.com/crucial707/newsdesk/internal/metrics"
	"github.com/crucial707/newsdesk/internal/middleware"
	"github.com/crucial707/newsdesk/internal/repo"
	"github.com/crucial707/newsdesk/internal/validation"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	migrate := flag.Bool("migrate", true, "apply database migrations before serving")
	flag.Parse()

	cfg := config.Load()
	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *migrate {
		version, err := db.Run(cfg.DatabaseURL())
		if err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied", "version", version)
	}

	database, err := db.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "tls", cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}

// newRouter wires every route against database. It is shared by main and the
// integration tests, which pass a sqlmock-backed *sql.DB.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)
	v := validation.New()

	authHandler := &handlers.AuthHandler{Users: repo.NewUserRepo(database), Tokens: tokens}
	articleHandler := &handlers.ArticleHandler{Repo: repo.NewArticleRepo(database)}
	healthHandler := &handlers.HealthHandler{DB: database}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	maxBody := middleware.MaxBytes(int64(cfg.MaxBodyBytes))

	r.Route("/auth", func(r chi.Router) {
		r.Use(maxBody)
		r.With(middleware.ValidateBody[validation.RegisterRequest](v, metrics.AuthRejected(metrics.ActionRegister))).
			Post("/register", authHandler.Register)
		r.With(middleware.ValidateBody[validation.LoginRequest](v, metrics.AuthRejected(metrics.ActionLogin))).
			Post("/login", authHandler.Login)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", articleHandler.ListArticles)
		r.With(
			maxBody,
			middleware.JWTMiddleware(tokens),
			middleware.ValidateBody[validation.ArticleRequest](v),
		).Post("/", articleHandler.CreateArticle)
	})

	return r
}

func newLogger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "newsdesk")
}
