package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kinopark/auth-service/internal/app/auth/entity"
	"kinopark/auth-service/internal/app/auth/repository"
	"kinopark/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuthService обрабатывает бизнес-логику аутентификации
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *util.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	// Имя и email должны быть свободны
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	existing, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Age:          req.Age,
		Status:       entity.StatusSimple,
		RegisteredAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// dummyPasswordHash - bcrypt хэш той же стоимости, что у настоящих
// паролей. Сравнение с ним выполняется на пути неизвестного имени,
// чтобы время ответа не выдавало, существует ли учетная запись.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login выполняет вход пользователя.
// Неизвестное имя и неверный пароль неразличимы для вызывающего,
// чтобы по ответу нельзя было перечислять учетные записи.
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			util.CheckPassword(req.Password, dummyPasswordHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateAuthResponse(ctx, user)
}

// RefreshTokens обновляет пару токенов. Использованный refresh токен
// переносится в отозванные - каждый токен работает ровно один раз за
// цикл ротации, а повторное использование отличимо от истечения.
// Пароль на этом пути не перепроверяется.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	// Отзыв проверяем до поиска: отозванный токен уже удален из активных,
	// и без этой проверки он был бы неотличим от истекшего
	revoked, err := s.tokenRepo.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check revoked token: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	storedToken, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken, storedToken.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.generateTokenPair(ctx, user)
}

// Logout отзывает переданный refresh токен и помещает предъявленный
// access токен в черный список до его истечения.
// Неизвестный или пустой refresh токен - ошибка клиента, детали не раскрываем.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken == "" {
		return ErrInvalidToken
	}

	// Невалидный access токен в черный список не попадает:
	// валидацию он не пройдет и без этого
	if claims, err := s.jwtManager.ValidateToken(accessToken); err == nil {
		if err := s.tokenRepo.AddToBlacklist(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
			return fmt.Errorf("failed to blacklist access token: %w", err)
		}
	}

	storedToken, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken, storedToken.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// ValidateToken проверяет access токен.
// Токен из черного списка невалиден до своего естественного истечения.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error) {
	blacklisted, err := s.tokenRepo.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, ErrInvalidToken
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// generateAuthResponse создает полный ответ с профилем и токенами
func (s *AuthService) generateAuthResponse(ctx context.Context, user *entity.User) (*entity.AuthResponse, error) {
	tokenPair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &entity.AuthResponse{
		User:   entity.NewUserDetail(user),
		Tokens: *tokenPair,
	}, nil
}

// generateTokenPair генерирует пару токенов (access + refresh)
func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*entity.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.jwtManager.GetRefreshTokenDuration())
	if err := s.tokenRepo.SaveRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}
