package service

import (
	"context"
	"errors"
	"fmt"

	"kinopark/auth-service/internal/app/auth/entity"
	"kinopark/auth-service/internal/app/auth/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserService обслуживает профильный API.
// Каждая операция неявно отфильтрована по владельцу: чужой профиль
// через этот API не читается и не изменяется, попытка выглядит как 404.
type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewUserService создает новый сервис профилей
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// ListProfiles возвращает список профилей, видимых пользователю.
// Видим только собственный профиль.
func (s *UserService) ListProfiles(ctx context.Context, actorID uuid.UUID) ([]entity.UserListItem, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []entity.UserListItem{}, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return []entity.UserListItem{entity.NewUserListItem(user)}, nil
}

// GetProfile возвращает собственный профиль
func (s *UserService) GetProfile(ctx context.Context, actorID, targetID uuid.UUID) (*entity.UserDetail, error) {
	if actorID != targetID {
		return nil, ErrProfileNotFound
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	detail := entity.NewUserDetail(user)
	return &detail, nil
}

// UpdateProfile частично обновляет собственный профиль
func (s *UserService) UpdateProfile(ctx context.Context, actorID, targetID uuid.UUID, req *entity.UpdateProfileRequest) (*entity.UserDetail, error) {
	if actorID != targetID {
		return nil, ErrProfileNotFound
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Email != nil && *req.Email != user.Email {
		// Новый email должен быть свободен
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return nil, ErrUserExists
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	detail := entity.NewUserDetail(user)
	return &detail, nil
}

// DeleteProfile удаляет собственную учетную запись вместе с refresh токенами
func (s *UserService) DeleteProfile(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID != targetID {
		return ErrProfileNotFound
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.tokenRepo.DeleteUserRefreshTokens(ctx, targetID); err != nil {
		return fmt.Errorf("failed to delete user refresh tokens: %w", err)
	}

	return nil
}
