// Package purchase реализует HTTP-обработчик покупки сладости текущим пользователем.
package purchase

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

	"github.com/magabrotheeeer/sweet-shop/internal/http/middlewarectx"
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

// Response возвращает остаток после покупки и запись журнала.
type Response struct {
	Message  string           `json:"message" example:"Purchase successful"`
	Sweet    *models.Sweet    `json:"sweet"`
	Purchase *models.Purchase `json:"purchase"`
}

// Service описывает покупку.
type Service interface {
	Purchase(ctx context.Context, sweetID, userID string, qty int) (*inventory.PurchaseResult, error)
}

// Handler обрабатывает POST /sweets/{id}/purchase.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт обработчик покупки.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Купить сладость
// @Description Атомарно списывает quantity единиц со склада и записывает покупку в журнал.
// @Tags Inventory
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID сладости"
// @Param request body Request true "Количество"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или недостаточно товара"
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets/{id}/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.purchase"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(middlewarectx.MsgAuthRequired))
		return
	}

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

	res, err := h.service.Purchase(r.Context(), id, userID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.MsgSweetNotFound))
		case errors.Is(err, storage.ErrInsufficientStock):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.MsgInsufficientStock))
		case errors.Is(err, storage.ErrOutOfRange):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.MsgOutOfRange))
		case errors.Is(err, inventory.ErrInvalidQuantity):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Quantity must be at least 1"))
		default:
			log.Error("purchase failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.MsgInternal))
		}
		return
	}

	render.JSON(w, r, Response{
		Message:  "Purchase successful",
		Sweet:    res.Sweet,
		Purchase: res.Purchase,
	})
}
