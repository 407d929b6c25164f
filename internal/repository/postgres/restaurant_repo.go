package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"menulens/internal/domain"
	"menulens/internal/port"
)

type restaurantRepo struct {
	db *sqlx.DB
}

// NewRestaurantRepo creates a new PostgreSQL-backed RestaurantRepository.
func NewRestaurantRepo(db *sqlx.DB) port.RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) Create(ctx context.Context, rest *domain.Restaurant) error {
	now := time.Now().UTC()
	rest.CreatedAt = now
	rest.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO restaurants (id, name, city, country, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rest.ID, rest.Name, rest.City, rest.Country, rest.CreatedAt, rest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("restaurantRepo.Create: %w", err)
	}
	return nil
}

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.db.GetContext(ctx, &rest, "SELECT * FROM restaurants WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("restaurantRepo.GetByID: %w", err)
	}
	return &rest, nil
}

func (r *restaurantRepo) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.db.GetContext(ctx, &rest,
		"SELECT * FROM restaurants WHERE LOWER(name) = LOWER($1)", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("restaurantRepo.GetByName: %w", err)
	}
	return &rest, nil
}

func (r *restaurantRepo) List(ctx context.Context, offset, limit int) ([]domain.Restaurant, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM restaurants")
	if err != nil {
		return nil, 0, fmt.Errorf("restaurantRepo.List count: %w", err)
	}

	var rests []domain.Restaurant
	err = r.db.SelectContext(ctx, &rests,
		"SELECT * FROM restaurants ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("restaurantRepo.List: %w", err)
	}
	return rests, total, nil
}

func (r *restaurantRepo) Update(ctx context.Context, rest *domain.Restaurant) error {
	rest.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE restaurants SET name = $1, city = $2, country = $3, updated_at = $4
		 WHERE id = $5`,
		rest.Name, rest.City, rest.Country, rest.UpdatedAt, rest.ID)
	if err != nil {
		return fmt.Errorf("restaurantRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("restaurantRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("restaurantRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("restaurantRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
