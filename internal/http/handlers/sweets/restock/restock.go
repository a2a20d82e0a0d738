// Package restock реализует HTTP-обработчик пополнения склада администратором.
package restock

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/validate"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/services/inventory"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

type Request struct {
	Quantity int `json:"quantity" validate:"min=1,max=2147483647"`
}

type Response struct {
	Message string        `json:"message" example:"Restock successful"`
	Sweet   *models.Sweet `json:"sweet"`
}

// Service описывает пополнение склада.
type Service interface {
	Restock(ctx context.Context, sweetID string, qty int) (*models.Sweet, error)
}

// Handler обрабатывает POST /sweets/{id}/restock.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт обработчик пополнения.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Пополнить склад
// @Description Атомарно увеличивает остаток на quantity единиц. Только для администратора.
// @Tags Inventory
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID сладости"
// @Param request body Request true "Количество"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets/{id}/restock [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.restock"
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

	sweet, err := h.service.Restock(r.Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.MsgSweetNotFound))
		case errors.Is(err, storage.ErrOutOfRange):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.MsgOutOfRange))
		case errors.Is(err, inventory.ErrInvalidQuantity):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Quantity must be at least 1"))
		default:
			log.Error("restock failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.MsgInternal))
		}
		return
	}

	render.JSON(w, r, Response{Message: "Restock successful", Sweet: sweet})
}
