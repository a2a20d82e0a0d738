// Package catalog содержит логику управления каталогом сладостей.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

// ErrInvalidInput возвращается для данных, которые нельзя сохранить в каталог.
var ErrInvalidInput = errors.New("invalid sweet data")

// Repository описывает операции хранилища над каталогом.
type Repository interface {
	ListSweets(ctx context.Context) ([]*models.Sweet, error)
	GetSweet(ctx context.Context, id string) (*models.Sweet, error)
	SearchSweets(ctx context.Context, filter models.SearchFilter) ([]*models.Sweet, error)
	CreateSweet(ctx context.Context, sweet models.Sweet) (*models.Sweet, error)
	UpdateSweet(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error)
	DeleteSweet(ctx context.Context, id string) (bool, error)
}

// Service реализует операции каталога.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт сервис каталога.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает весь каталог.
func (s *Service) List(ctx context.Context) ([]*models.Sweet, error) {
	const op = "catalog.List"

	res, err := s.repo.ListSweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает сладость по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Sweet, error) {
	const op = "catalog.Get"

	res, err := s.repo.GetSweet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Search ищет по фильтру. Без фильтров возвращает весь каталог.
func (s *Service) Search(ctx context.Context, filter models.SearchFilter) ([]*models.Sweet, error) {
	const op = "catalog.Search"

	if filter.Category != "" && !models.IsCategory(filter.Category) {
		return nil, fmt.Errorf("%s: unknown category %q: %w", op, filter.Category, ErrInvalidInput)
	}
	if filter.IsEmpty() {
		return s.List(ctx)
	}
	res, err := s.repo.SearchSweets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create добавляет сладость в каталог и присваивает ей новый ID.
func (s *Service) Create(ctx context.Context, sweet models.Sweet) (*models.Sweet, error) {
	const op = "catalog.Create"

	if sweet.Name == "" || !models.IsCategory(sweet.Category) ||
		sweet.Quantity < 0 || sweet.Price.IsNegative() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	sweet.ID = uuid.NewString()

	created, err := s.repo.CreateSweet(ctx, sweet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sweet created", slog.String("sweet_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Update применяет частичное обновление. Пустой патч возвращает текущую запись.
func (s *Service) Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	const op = "catalog.Update"

	if (patch.Name != nil && *patch.Name == "") ||
		(patch.Category != nil && !models.IsCategory(*patch.Category)) ||
		(patch.Quantity != nil && *patch.Quantity < 0) ||
		(patch.Price != nil && patch.Price.IsNegative()) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	updated, err := s.repo.UpdateSweet(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sweet updated", slog.String("sweet_id", id))
	return updated, nil
}

// Delete удаляет сладость и сообщает, была ли она в каталоге.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	const op = "catalog.Delete"

	deleted, err := s.repo.DeleteSweet(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if deleted {
		s.log.Info("sweet deleted", slog.String("sweet_id", id))
	}
	return deleted, nil
}
