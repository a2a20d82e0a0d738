// Package services содержит логику регистрации, входа и проверки токенов пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/jwt"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/password"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

// Минимальные длины учётных данных.
const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

var (
	// ErrInvalidCredentials — неверное имя пользователя или пароль.
	// Не различает «нет такого пользователя» и «неверный пароль».
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserExists — имя пользователя уже занято.
	ErrUserExists = errors.New("username already exists")
	// ErrWeakCredentials — имя или пароль короче допустимого.
	ErrWeakCredentials = errors.New("username or password too short")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или storage.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// dummyHash сравнивается с паролем, когда пользователь не найден,
// чтобы время ответа не выдавало существование имени.
var dummyHash = sync.OnceValue(func() string {
	h, err := password.GetHash("sweet-shop-dummy-password")
	if err != nil {
		panic(err)
	}
	return h
})

// Register создает нового пользователя с ролью "user" и сразу выдаёт ему токен.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	if len(username) < MinUsernameLen || len(rawPassword) < MinPasswordLen {
		return nil, "", fmt.Errorf("%s: %w", op, ErrWeakCredentials)
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, "", fmt.Errorf("%s: %w", op, ErrUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.create(ctx, username, rawPassword, models.RoleUser)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, token, nil
}

// Login проверяет пароль пользователя и выдаёт JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		_ = password.CompareHash(dummyHash(), rawPassword)
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// ValidateToken проверяет JWT и возвращает пользователя из его claims.
// Роль берётся из токена и действует до его истечения.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// EnsureAdmin создаёт администратора с заданными учётными данными,
// если пользователя с таким именем ещё нет. Существующая запись не меняется.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, rawPassword string) error {
	const op = "auth.EnsureAdmin"

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.create(ctx, username, rawPassword, models.RoleAdmin)
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin account created", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return nil
}

func (s *AuthService) create(ctx context.Context, username, rawPassword, role string) (*models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}
