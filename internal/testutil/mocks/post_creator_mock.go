package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/echokeys/echokeys/internal/platform"
)

// MockPostCreator is a mock implementation of platform.PostCreator
type MockPostCreator struct {
	mock.Mock
}

func (m *MockPostCreator) CreatePost(ctx context.Context) (*platform.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.Post), args.Error(1)
}
