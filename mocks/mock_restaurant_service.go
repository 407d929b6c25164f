package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
	"menulens/internal/service"
)

// MockRestaurantService is a mock implementation of service.RestaurantService.
type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) Create(ctx context.Context, input service.CreateRestaurantInput) (*domain.Restaurant, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) List(ctx context.Context, offset, limit int) ([]domain.Restaurant, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *MockRestaurantService) Update(ctx context.Context, id uuid.UUID, input service.UpdateRestaurantInput) (*domain.Restaurant, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
