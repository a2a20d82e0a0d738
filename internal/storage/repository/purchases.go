package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

// inventoryTx реализует storage.InventoryTx поверх открытой транзакции.
type inventoryTx struct {
	q querier
}

// DecrementQuantity уменьшает остаток одним условным UPDATE: проверка и списание
// выполняются под блокировкой строки, параллельная покупка не может вклиниться между ними.
func (t *inventoryTx) DecrementQuantity(ctx context.Context, sweetID string, n int) (*models.Sweet, error) {
	const op = "storage.DecrementQuantity"

	query := `UPDATE sweets SET quantity = quantity - $2
			  WHERE id = $1 AND quantity >= $2
			  RETURNING ` + sweetColumns
	sweet, err := scanSweet(t.q.QueryRowContext(ctx, query, sweetID, n))
	if err == nil {
		return sweet, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := t.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sweets WHERE id = $1)`, sweetID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrInsufficientStock)
}

// CreatePurchase добавляет запись в журнал покупок.
func (t *inventoryTx) CreatePurchase(ctx context.Context, p models.Purchase) error {
	const op = "storage.CreatePurchase"

	query := `INSERT INTO purchases (id, user_id, sweet_id, quantity, total_price, purchased_at)
			  VALUES ($1, $2, $3, $4, $5::numeric, $6)`
	if _, err := t.q.ExecContext(ctx, query,
		p.ID, p.UserID, p.SweetID, p.Quantity, p.TotalPrice.String(), p.PurchasedAt); err != nil {
		if isOutOfRange(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrOutOfRange)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementQuantity атомарно увеличивает остаток на n и возвращает обновлённую запись.
func (s *Storage) IncrementQuantity(ctx context.Context, sweetID string, n int) (*models.Sweet, error) {
	const op = "storage.IncrementQuantity"

	query := `UPDATE sweets SET quantity = quantity + $2
			  WHERE id = $1
			  RETURNING ` + sweetColumns
	sweet, err := scanSweet(s.DB.QueryRowContext(ctx, query, sweetID, n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		if isOutOfRange(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sweet, nil
}

// ListPurchasesByUser возвращает историю покупок пользователя, новые сверху.
// Для удалённых товаров поле Sweet остаётся nil.
func (s *Storage) ListPurchasesByUser(ctx context.Context, userID string) ([]*models.PurchaseWithSweet, error) {
	const op = "storage.ListPurchasesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.user_id, p.sweet_id, p.quantity, p.total_price, p.purchased_at,
				  s.id, s.name, s.description, s.category, s.price::text, s.quantity, s.image_url
			  FROM purchases p
			  LEFT JOIN sweets s ON s.id = p.sweet_id
			  WHERE p.user_id = $1
			  ORDER BY p.purchased_at DESC, p.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.PurchaseWithSweet, 0)
	for rows.Next() {
		var (
			item                           models.PurchaseWithSweet
			sweetID, name, category, price sql.NullString
			description, imageURL          sql.NullString
			quantity                       sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.SweetID, &item.Quantity,
			&item.TotalPrice, &item.PurchasedAt,
			&sweetID, &name, &description, &category, &price, &quantity, &imageURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sweetID.Valid {
			unitPrice, err := money.Parse(price.String)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			item.Sweet = &models.Sweet{
				ID:       sweetID.String,
				Name:     name.String,
				Category: category.String,
				Price:    unitPrice,
				Quantity: int(quantity.Int64),
			}
			if description.Valid {
				item.Sweet.Description = &description.String
			}
			if imageURL.Valid {
				item.Sweet.ImageURL = &imageURL.String
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
