package service

import (
	"context"

	"github.com/google/uuid"

	"menulens/internal/domain"
	"menulens/internal/port"
)

// CreateRestaurantInput is the DTO for creating a restaurant.
type CreateRestaurantInput struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// UpdateRestaurantInput is the DTO for updating a restaurant.
type UpdateRestaurantInput struct {
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

// RestaurantService defines the restaurant management contract.
type RestaurantService interface {
	Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Restaurant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type restaurantService struct {
	repo port.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService implementation.
func NewRestaurantService(repo port.RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error) {
	r := &domain.Restaurant{
		ID:      uuid.New(),
		Name:    input.Name,
		City:    input.City,
		Country: input.Country,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *restaurantService) List(ctx context.Context, offset, limit int) ([]domain.Restaurant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *restaurantService) Update(ctx context.Context, id uuid.UUID, input UpdateRestaurantInput) (*domain.Restaurant, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		r.Name = *input.Name
	}
	if input.City != nil {
		r.City = *input.City
	}
	if input.Country != nil {
		r.Country = *input.Country
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *restaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
