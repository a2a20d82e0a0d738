// Package sweetshop собирает HTTP-приложение магазина: хранилище, сервисы и маршруты.
package sweetshop

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/health"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/create"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/list"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/purchase"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/remove"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/restock"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/search"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/sweets/update"
	"github.com/magabrotheeeer/sweet-shop/internal/http/handlers/user/purchases"
	"github.com/magabrotheeeer/sweet-shop/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sweet-shop/internal/metrics"
	authservice "github.com/magabrotheeeer/sweet-shop/internal/services/auth"
	"github.com/magabrotheeeer/sweet-shop/internal/services/catalog"
	"github.com/magabrotheeeer/sweet-shop/internal/services/inventory"
)

// Deps собирает зависимости маршрутов.
type Deps struct {
	Logger    *slog.Logger
	Auth      *authservice.AuthService
	Catalog   *catalog.Service
	Inventory *inventory.Service
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	DB        health.Pinger
	// AuthLimiter ограничивает частоту запросов к /api/auth.
	AuthLimiter *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.AuthLimiter))
			r.Post("/auth/register", register.New(logger, d.Auth).ServeHTTP)
			r.Post("/auth/login", login.New(logger, d.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Auth, logger))

			r.Get("/sweets", list.New(logger, d.Catalog).ServeHTTP)
			r.Get("/sweets/search", search.New(logger, d.Catalog).ServeHTTP)
			r.Post("/sweets/{id}/purchase", purchase.New(logger, d.Inventory).ServeHTTP)
			r.Get("/user/purchases", purchases.New(logger, d.Inventory).ServeHTTP)

			// Только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Post("/sweets", create.New(logger, d.Catalog).ServeHTTP)
				r.Put("/sweets/{id}", update.New(logger, d.Catalog).ServeHTTP)
				r.Delete("/sweets/{id}", remove.New(logger, d.Catalog).ServeHTTP)
				r.Post("/sweets/{id}/restock", restock.New(logger, d.Inventory).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, d.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
