package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
	"menulens/internal/service"
)

// MockFeedbackService is a mock implementation of service.FeedbackService.
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Submit(ctx context.Context, input service.SubmitFeedbackInput) (*domain.FeedbackRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackService) ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackService) RebuildLearningStore(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFeedbackService) StartPeriodicRebuild(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}
