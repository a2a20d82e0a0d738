package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage/repository"
)

func seedUser(t *testing.T, s *repository.Storage, username string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func seedSweet(t *testing.T, s *repository.Storage, name, category, price string, quantity int) *models.Sweet {
	t.Helper()
	sweet, err := s.CreateSweet(context.Background(), models.Sweet{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Price:    money.MustParse(price),
		Quantity: quantity,
	})
	require.NoError(t, err)
	return sweet
}

func newPurchase(userID, sweetID string, qty int, total string, at time.Time) models.Purchase {
	return models.Purchase{
		ID:          uuid.NewString(),
		UserID:      userID,
		SweetID:     sweetID,
		Quantity:    qty,
		TotalPrice:  money.MustParse(total),
		PurchasedAt: at,
	}
}

func mustAmount(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func patchPrice(price money.Amount) models.SweetPatch {
	return models.SweetPatch{Price: &price}
}
