// Package models содержит доменные структуры магазина: пользователя, сладость и покупку.
// Структуры используются в бизнес‑логике, хранилище и как тела HTTP‑ответов.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя (uuid)
	Username     string    // Имя пользователя (уникальное, с учётом регистра)
	PasswordHash string    // bcrypt-хэш пароля, наружу не отдаётся
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата регистрации
}

// PublicUser — представление пользователя без пароля для ответов API.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public возвращает пользователя без чувствительных полей.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
