package sweetshop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	// Регистрирует OpenAPI-документ для /docs.
	_ "github.com/magabrotheeeer/sweet-shop/docs"
	"github.com/magabrotheeeer/sweet-shop/internal/config"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/jwt"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/metrics"
	"github.com/magabrotheeeer/sweet-shop/internal/migrations"
	authservice "github.com/magabrotheeeer/sweet-shop/internal/services/auth"
	"github.com/magabrotheeeer/sweet-shop/internal/services/catalog"
	"github.com/magabrotheeeer/sweet-shop/internal/services/inventory"
	"github.com/magabrotheeeer/sweet-shop/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — HTTP-сервер магазина вместе с его хранилищем.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New подключается к базе, применяет миграции, создаёт администратора из конфига
// и собирает маршрутизатор.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sweetshop.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, logger)

	if cfg.AdminUsername != "" {
		if err = authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "sweetshop"),
	)
	m := metrics.New(reg)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:      logger,
		Auth:        authService,
		Catalog:     catalog.New(db, logger),
		Inventory:   inventory.New(db, m, logger),
		Metrics:     m,
		Gatherer:    reg,
		DB:          db,
		AuthLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер
// и закрывает соединение с базой.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = a.db.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
