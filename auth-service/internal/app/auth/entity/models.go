package entity

import (
	"time"

	"github.com/google/uuid"
)

// Статусы подписки пользователя.
// "pro" открывает доступ к премиум-фильмам на уровне каталога.
const (
	StatusPro    = "pro"
	StatusSimple = "simple"
)

// User представляет учетную запись зрителя
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Age          *int      `json:"age,omitempty" db:"age"`
	PhotoURL     string    `json:"photo_url,omitempty" db:"photo_url"`
	Status       string    `json:"status" db:"status"` // pro | simple
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// RefreshToken хранит refresh токены для обновления JWT
type RefreshToken struct {
	ID        int       `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RevokedToken хранит отозванные refresh токены до их естественного истечения
type RevokedToken struct {
	ID        int       `json:"id" db:"id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}
