// Package update реализует HTTP-обработчик частичного обновления сладости.
//
// Любое поле тела необязательно; отсутствующие поля не меняются.
// Явный null в description или imageUrl очищает поле.
// Поле quantity перезаписывает остаток напрямую. Доступен только администратору.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/validate"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/services/catalog"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

// Request — частичное обновление.
type Request struct {
	Name        *string        `json:"name" validate:"omitempty,min=1"`
	Description NullableString `json:"description" swaggertype:"string"`
	Category    *string        `json:"category" validate:"omitempty,category"`
	Price       *money.Amount  `json:"price" swaggertype:"string" example:"2.50"`
	Quantity    *int           `json:"quantity" validate:"omitempty,gte=0,max=2147483647"`
	ImageURL    NullableString `json:"imageUrl" swaggertype:"string"`
}

// NullableString отличает отсутствующее поле от явного null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON вызывается только для присутствующего поля, в том числе для null.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// cleared сообщает, что поле передано явным null.
func (n NullableString) cleared() bool {
	return n.Set && n.Value == nil
}

// Service описывает обновление сладости.
type Service interface {
	Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error)
}

// Handler обрабатывает PUT /sweets/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт обработчик обновления.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить сладость
// @Description Частично обновляет позицию каталога. Только для администратора.
// @Tags Sweets
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID сладости"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} models.Sweet
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.MsgSweetNotFound))
		return
	}

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

	updated, err := h.service.Update(r.Context(), id, models.SweetPatch{
		Name:        req.Name,
		Description: req.Description.Value,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL.Value,

		ClearDescription: req.Description.cleared(),
		ClearImageURL:    req.ImageURL.cleared(),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.MsgSweetNotFound))
		case errors.Is(err, storage.ErrOutOfRange):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.MsgOutOfRange))
		case errors.Is(err, catalog.ErrInvalidInput):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid sweet data"))
		default:
			log.Error("failed to update sweet", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.MsgInternal))
		}
		return
	}

	log.Info("sweet updated", slog.String("sweet_id", id))
	render.JSON(w, r, updated)
}
