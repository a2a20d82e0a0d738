// Package search реализует HTTP-обработчик поиска по каталогу.
//
// Параметры name, category, minPrice и maxPrice необязательны и объединяются через AND;
// без параметров возвращается весь каталог.
package search

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/validate"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/services/catalog"
)

// Query — параметры строки запроса.
type Query struct {
	Name     string `json:"name"`
	Category string `json:"category" validate:"omitempty,category"`
	MinPrice string `json:"minPrice" validate:"omitempty,price"`
	MaxPrice string `json:"maxPrice" validate:"omitempty,price"`
}

// Service описывает поиск по каталогу.
type Service interface {
	Search(ctx context.Context, filter models.SearchFilter) ([]*models.Sweet, error)
}

// Handler обрабатывает GET /sweets/search.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт обработчик поиска.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Поиск сладостей
// @Description Ищет по подстроке названия без учёта регистра, категории и включительному диапазону цены.
// @Tags Sweets
// @Produce  json
// @Security BearerAuth
// @Param name query string false "Подстрока названия"
// @Param category query string false "Категория"
// @Param minPrice query string false "Минимальная цена"
// @Param maxPrice query string false "Максимальная цена"
// @Success 200 {array} models.Sweet
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	values := r.URL.Query()
	q := Query{
		Name:     values.Get("name"),
		Category: values.Get("category"),
		MinPrice: values.Get("minPrice"),
		MaxPrice: values.Get("maxPrice"),
	}
	if err := h.validate.Struct(q); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	filter := models.SearchFilter{Name: q.Name, Category: q.Category}
	if q.MinPrice != "" {
		p := money.MustParse(q.MinPrice)
		filter.MinPrice = &p
	}
	if q.MaxPrice != "" {
		p := money.MustParse(q.MaxPrice)
		filter.MaxPrice = &p
	}

	sweets, err := h.service.Search(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid search parameters"))
			return
		}
		log.Error("search failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}

	render.JSON(w, r, sweets)
}
