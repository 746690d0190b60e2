package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kinopark/trends-service/internal/app/trends/entity"
)

// ==================== MockTrendingRepository ====================

type MockTrendingRepository struct {
	mock.Mock
}

func (m *MockTrendingRepository) IncrementScore(ctx context.Context, movieID string, delta float64) error {
	args := m.Called(ctx, movieID, delta)
	return args.Error(0)
}

func (m *MockTrendingRepository) TopMovies(ctx context.Context, limit int) ([]entity.TrendingMovie, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TrendingMovie), args.Error(1)
}

func (m *MockTrendingRepository) TrimToTop(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTrendingRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ==================== MockTokenCleanupRepository ====================

type MockTokenCleanupRepository struct {
	mock.Mock
}

func (m *MockTokenCleanupRepository) CleanupExpiredTokens(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
