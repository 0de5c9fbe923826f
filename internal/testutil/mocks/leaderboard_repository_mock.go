package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/echokeys/echokeys/internal/models"
)

// MockLeaderboardRepository is a mock implementation of repository.LeaderboardRepository
type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) Insert(ctx context.Context, entry models.LeaderboardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepository) CountHigher(ctx context.Context, wpm float64) (int, error) {
	args := m.Called(ctx, wpm)
	return args.Int(0), args.Error(1)
}
