// Package list реализует HTTP-обработчик получения всего каталога сладостей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sweet-shop/internal/http/response"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

// Service описывает получение каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Sweet, error)
}

// Handler обрабатывает GET /sweets.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог сладостей
// @Description Возвращает все сладости, отсортированные по названию.
// @Tags Sweets
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Sweet
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /sweets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sweets.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sweets, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list sweets", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternal))
		return
	}

	log.Debug("sweets listed", slog.Int("count", len(sweets)))
	render.JSON(w, r, sweets)
}
