package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"empdir/internal/domain/auth"
	"empdir/internal/domain/employee"
	"empdir/internal/platform/config"
	"empdir/internal/platform/db"
	"empdir/internal/platform/docstore"
	"empdir/internal/platform/logging"
	"empdir/internal/platform/metrics"
	"empdir/internal/transport/http/api"
	authhandler "empdir/internal/transport/http/handlers/auth"
	employeehandler "empdir/internal/transport/http/handlers/employees"
	"empdir/internal/transport/http/middleware"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Config    config.Config
	Employees employeehandler.Service
	Auth      *auth.Service
	Metrics   *metrics.Collector
	Ready     func(ctx context.Context) error
}

func NewRouter(d Deps) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(d.Config.Environment == "production"))
	if d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
	}
	router.Use(middleware.BodyLimit(d.Config.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				slog.WarnContext(r.Context(), "readiness check failed", "err", err)
				http.Error(w, "document store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if d.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, d.Metrics.Snapshot())
		})
	}

	authhandler.NewHandler(d.Auth).RegisterRoutes(router)
	employeehandler.NewHandler(d.Employees).RegisterRoutes(router, middleware.RequireBearer(d.Auth))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return router
}

// Run starts the service and blocks until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.New(cfg.Environment, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	client, err := docstore.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := docstore.Disconnect(client, cfg.MongoTimeout); err != nil {
			slog.Warn("mongo disconnect failed", "err", err)
		}
	}()

	store := employee.NewStore(client.Database(cfg.MongoDatabase), cfg.EmployeeCollection)
	schemaCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	err = store.EnsureSchema(schemaCtx)
	cancel()
	if err != nil {
		return err
	}

	users, closeUsers, err := credentialStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUsers()
	if err := db.Seed(ctx, users, cfg); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := NewRouter(Deps{
		Config:    cfg,
		Employees: employee.NewService(store),
		Auth:      auth.NewService(users, cfg.JWTSecret, cfg.AccessTokenTTL()),
		Metrics:   collector,
		Ready: func(ctx context.Context) error {
			return docstore.Ping(ctx, client, cfg.MongoTimeout)
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("employee directory listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// credentialStore picks Postgres when DATABASE_URL is set and falls back to process memory.
func credentialStore(ctx context.Context, cfg config.Config) (auth.CredentialStore, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, accounts are kept in memory")
		return auth.NewMemoryStore(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewStore(pool), pool.Close, nil
}
