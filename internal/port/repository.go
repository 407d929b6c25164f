package port

import (
	"context"

	"github.com/google/uuid"

	"menulens/internal/domain"
)

// ScanRepository defines the contract for menu scan persistence.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.MenuScan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error)
	List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error)
	ClaimQueued(ctx context.Context, maxAttempts, limit int) ([]domain.MenuScan, error)
	UpdateResult(ctx context.Context, scan *domain.MenuScan) error
	UpdateFailure(ctx context.Context, id uuid.UUID, scanError string, requeue bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackRepository defines the contract for user feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, rec *domain.FeedbackRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error)
	ListAll(ctx context.Context) ([]domain.FeedbackRecord, error)
	ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error)
}

// RestaurantRepository defines the contract for restaurant persistence.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	GetByName(ctx context.Context, name string) (*domain.Restaurant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Restaurant, int, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatsRepository defines the contract for aggregate scan statistics.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
