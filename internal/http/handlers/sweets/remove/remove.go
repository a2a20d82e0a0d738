// Package remove реализует HTTP-обработчик удаления сладости из каталога.
// Записи журнала покупок при этом сохраняются.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
)

// Service описывает удаление сладости.
type Service interface {
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler обрабатывает DELETE /sweets/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик удаления.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить сладость
// @Description Удаляет позицию каталога. Только для администратора.
// @Tags Sweets
// @Security BearerAuth
// @Param id path string true "ID сладости"
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.remove"
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

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Error("failed to delete sweet", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}
	if !deleted {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.MsgSweetNotFound))
		return
	}

	log.Info("sweet deleted", slog.String("sweet_id", id))
	w.WriteHeader(http.StatusNoContent)
}
