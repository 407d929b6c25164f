package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
)

// MockFeedbackRepo is a mock implementation of port.FeedbackRepository.
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, rec *domain.FeedbackRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockFeedbackRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepo) ListAll(ctx context.Context) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepo) ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}
