// Package storage описывает общие для хранилища и бизнес-логики ошибки
// и контракт транзакции, в которой выполняется покупка.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrUserExists — пользователь с таким username уже существует.
	ErrUserExists = errors.New("user already exists")
	// ErrInsufficientStock — на складе меньше единиц, чем запрошено.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOutOfRange значит, что число не помещается в колонку: остаток больше INTEGER
	// или сумма больше NUMERIC(10,2).
	ErrOutOfRange = errors.New("value out of range")
)

// InventoryTx — операции, доступные внутри одной транзакции покупки.
type InventoryTx interface {
	// DecrementQuantity атомарно уменьшает остаток на n, только если остаток >= n.
	// Возвращает ErrNotFound, если товара нет, и ErrInsufficientStock, если не хватает единиц.
	DecrementQuantity(ctx context.Context, sweetID string, n int) (*models.Sweet, error)
	// CreatePurchase добавляет запись в журнал покупок.
	CreatePurchase(ctx context.Context, p models.Purchase) error
}
