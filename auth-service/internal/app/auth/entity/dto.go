package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
	Age      *int    `json:"age,omitempty" binding:"omitempty,min=10,max=100"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest - запрос на обновление токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - отзыв refresh токена
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse - ответ с профилем и токенами
type AuthResponse struct {
	User   UserDetail `json:"user"`
	Tokens TokenPair  `json:"tokens"`
}

// UserListItem - краткая форма профиля для списковых ответов
type UserListItem struct {
	ID       uuid.UUID `json:"id"`
	PhotoURL string    `json:"photo_url,omitempty"`
	Username string    `json:"username"`
	Status   string    `json:"status"`
}

// UserDetail - полная форма профиля
type UserDetail struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	Age          *int      `json:"age,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UpdateProfileRequest - запрос на изменение собственного профиля.
// Статус подписки через этот API не меняется.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Age       *int    `json:"age,omitempty" binding:"omitempty,min=10,max=100"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewUserListItem собирает краткую форму из модели
func NewUserListItem(u *User) UserListItem {
	return UserListItem{
		ID:       u.ID,
		PhotoURL: u.PhotoURL,
		Username: u.Username,
		Status:   u.Status,
	}
}

// NewUserDetail собирает полную форму из модели
func NewUserDetail(u *User) UserDetail {
	return UserDetail{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Age:          u.Age,
		PhotoURL:     u.PhotoURL,
		Status:       u.Status,
		RegisteredAt: u.RegisteredAt,
	}
}
