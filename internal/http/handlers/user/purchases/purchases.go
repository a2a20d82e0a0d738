// Package purchases реализует HTTP-обработчик истории покупок текущего пользователя.
package purchases

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sweet-shop/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

const MsgFetchFailed = "Failed to fetch history"

// Service описывает чтение журнала покупок.
type Service interface {
	History(ctx context.Context, userID string) ([]*models.PurchaseWithSweet, error)
}

// Handler обрабатывает GET /user/purchases.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик истории покупок.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История покупок
// @Description Возвращает покупки текущего пользователя, новые первыми. Для удалённых сладостей sweet равен null.
// @Tags Inventory
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.PurchaseWithSweet
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/purchases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.purchases"
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

	history, err := h.service.History(r.Context(), userID)
	if err != nil {
		log.Error("failed to fetch history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(MsgFetchFailed))
		return
	}
	if history == nil {
		history = []*models.PurchaseWithSweet{}
	}

	log.Debug("history fetched", slog.Int("count", len(history)))
	render.JSON(w, r, history)
}
