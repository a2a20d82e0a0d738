package register

import (
	"context"

	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, username, password string) (*models.User, string, error)
}
