package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
	"menulens/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) UploadAndQueue(ctx context.Context, input service.UploadScanInput) (*domain.MenuScan, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuScan), args.Error(1)
}

func (m *MockScanService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuScan), args.Error(1)
}

func (m *MockScanService) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}

func (m *MockScanService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, restaurantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}

func (m *MockScanService) GetImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockScanService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScanService) ProcessScan(ctx context.Context, scan *domain.MenuScan, maxAttempts int) {
	m.Called(ctx, scan, maxAttempts)
}
