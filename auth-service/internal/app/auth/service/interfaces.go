package service

import (
	"context"

	"kinopark/auth-service/internal/app/auth/entity"
	"kinopark/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

// AuthServiceInterface - контракт сервиса аутентификации для handlers и тестов
type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error)
}

// UserServiceInterface - контракт профильных операций.
// Все операции принимают actorID и работают только с собственным профилем.
type UserServiceInterface interface {
	ListProfiles(ctx context.Context, actorID uuid.UUID) ([]entity.UserListItem, error)
	GetProfile(ctx context.Context, actorID, targetID uuid.UUID) (*entity.UserDetail, error)
	UpdateProfile(ctx context.Context, actorID, targetID uuid.UUID, req *entity.UpdateProfileRequest) (*entity.UserDetail, error)
	DeleteProfile(ctx context.Context, actorID, targetID uuid.UUID) error
}
