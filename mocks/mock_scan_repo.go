package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
)

// MockScanRepo is a mock implementation of port.ScanRepository.
type MockScanRepo struct {
	mock.Mock
}

func (m *MockScanRepo) Create(ctx context.Context, scan *domain.MenuScan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuScan), args.Error(1)
}

func (m *MockScanRepo) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}

func (m *MockScanRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, restaurantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}

func (m *MockScanRepo) ClaimQueued(ctx context.Context, maxAttempts, limit int) ([]domain.MenuScan, error) {
	args := m.Called(ctx, maxAttempts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuScan), args.Error(1)
}

func (m *MockScanRepo) UpdateResult(ctx context.Context, scan *domain.MenuScan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepo) UpdateFailure(ctx context.Context, id uuid.UUID, scanError string, requeue bool) error {
	args := m.Called(ctx, id, scanError, requeue)
	return args.Error(0)
}

func (m *MockScanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
