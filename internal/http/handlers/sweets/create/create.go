// Package create реализует HTTP-обработчик добавления сладости в каталог.
// Доступен только администратору.
package create

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
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

// Request — данные новой сладости. Цена принимается строкой или числом.
type Request struct {
	Name        string        `json:"name" validate:"required"`
	Description *string       `json:"description"`
	Category    string        `json:"category" validate:"required,category"`
	Price       *money.Amount `json:"price" validate:"required" swaggertype:"string" example:"2.50"`
	Quantity    int           `json:"quantity" validate:"gte=0,max=2147483647"`
	ImageURL    *string       `json:"imageUrl"`
}

// Handler управляет HTTP-запросами на создание сладостей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс создания сладости.
type Service interface {
	Create(ctx context.Context, sweet models.Sweet) (*models.Sweet, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить сладость
// @Description Создаёт новую позицию каталога. Только для администратора.
// @Tags Sweets
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные сладости"
// @Success 201 {object} models.Sweet
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.DecodeError(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Create(r.Context(), models.Sweet{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid sweet data"))
			return
		}
		if errors.Is(err, storage.ErrOutOfRange) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.MsgOutOfRange))
			return
		}
		log.Error("failed to create sweet", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}

	log.Info("sweet created", slog.String("sweet_id", created.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}
