// Package inventory содержит складскую логику магазина: покупку, пополнение
// остатка и историю покупок пользователя.
//
// Остаток товара меняется только атомарными операциями хранилища,
// поэтому параллельные покупки не могут увести его ниже нуля.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/metrics"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

// ErrInvalidQuantity возвращается, если количество не положительное.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Store описывает операции хранилища, нужные складу.
type Store interface {
	// RunInTx выполняет fn в одной транзакции.
	RunInTx(ctx context.Context, fn func(tx storage.InventoryTx) error) error
	// IncrementQuantity атомарно увеличивает остаток.
	IncrementQuantity(ctx context.Context, sweetID string, n int) (*models.Sweet, error)
	// ListPurchasesByUser возвращает журнал покупок пользователя, новые сверху.
	ListPurchasesByUser(ctx context.Context, userID string) ([]*models.PurchaseWithSweet, error)
}

// Metrics считает складские операции.
type Metrics interface {
	ObservePurchase(qty int)
	ObservePurchaseRejected(reason string)
	ObserveRestock(qty int)
}

type PurchaseResult struct {
	Sweet    *models.Sweet    `json:"sweet"`
	Purchase *models.Purchase `json:"purchase"`
}

// Service реализует складские операции.
type Service struct {
	store   Store
	metrics Metrics
	log     *slog.Logger
	now     func() time.Time
}

// New создаёт складской сервис.
func New(store Store, m Metrics, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		metrics: m,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Purchase продаёт qty единиц товара пользователю. Списание остатка и запись
// в журнал выполняются в одной транзакции: либо обе, либо ни одной.
// Итоговая сумма считается как цена × количество на момент покупки.
func (s *Service) Purchase(ctx context.Context, sweetID, userID string, qty int) (*PurchaseResult, error) {
	const op = "inventory.Purchase"

	if qty <= 0 {
		s.metrics.ObservePurchaseRejected(metrics.ReasonInvalidQuantity)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	var result PurchaseResult
	err := s.store.RunInTx(ctx, func(tx storage.InventoryTx) error {
		sweet, err := tx.DecrementQuantity(ctx, sweetID, qty)
		if err != nil {
			return err
		}
		purchase := models.Purchase{
			ID:          uuid.NewString(),
			UserID:      userID,
			SweetID:     sweet.ID,
			Quantity:    qty,
			TotalPrice:  sweet.Price.Times(qty),
			PurchasedAt: s.now(),
		}
		if err := tx.CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		result = PurchaseResult{Sweet: sweet, Purchase: &purchase}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientStock):
			s.metrics.ObservePurchaseRejected(metrics.ReasonInsufficientStock)
		case errors.Is(err, storage.ErrNotFound):
			s.metrics.ObservePurchaseRejected(metrics.ReasonNotFound)
		default:
			s.log.Error("purchase failed", slog.String("op", op), slog.String("sweet_id", sweetID), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.ObservePurchase(qty)
	s.log.Info("purchase completed",
		slog.String("sweet_id", sweetID),
		slog.String("user_id", userID),
		slog.Int("quantity", qty),
		slog.String("total_price", result.Purchase.TotalPrice.String()),
	)
	return &result, nil
}

// Restock увеличивает остаток товара на qty единиц.
func (s *Service) Restock(ctx context.Context, sweetID string, qty int) (*models.Sweet, error) {
	const op = "inventory.Restock"

	if qty <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}
	sweet, err := s.store.IncrementQuantity(ctx, sweetID, qty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.ObserveRestock(qty)
	s.log.Info("sweet restocked",
		slog.String("sweet_id", sweetID),
		slog.Int("quantity", qty),
		slog.Int("stock", sweet.Quantity),
	)
	return sweet, nil
}

// History возвращает покупки пользователя вместе с товарами, новые сверху.
func (s *Service) History(ctx context.Context, userID string) ([]*models.PurchaseWithSweet, error) {
	const op = "inventory.History"

	history, err := s.store.ListPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}
