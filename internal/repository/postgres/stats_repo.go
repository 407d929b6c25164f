package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"menulens/internal/domain"
	"menulens/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const scanStatsQuery = `SELECT
	COUNT(*) AS total_scans,
	COUNT(CASE WHEN status = 'queued' THEN 1 END) AS scans_queued,
	COUNT(CASE WHEN status = 'processing' THEN 1 END) AS scans_processing,
	COUNT(CASE WHEN status = 'completed' THEN 1 END) AS scans_completed,
	COUNT(CASE WHEN status = 'rejected' THEN 1 END) AS scans_rejected,
	COUNT(CASE WHEN status = 'failed' THEN 1 END) AS scans_failed,
	COUNT(CASE WHEN is_valid_menu THEN 1 END) AS valid_menus,
	COALESCE(AVG(CASE WHEN status = 'completed' THEN menu_score END), 0) AS avg_menu_score
FROM menu_scans`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, scanStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats scans: %w", err)
	}

	var restaurantCount int
	if err := r.db.GetContext(ctx, &restaurantCount,
		"SELECT COUNT(*) FROM restaurants"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats restaurants: %w", err)
	}
	stats.TotalRestaurants = restaurantCount

	var feedbackCount int
	if err := r.db.GetContext(ctx, &feedbackCount,
		"SELECT COUNT(*) FROM menu_feedback"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats feedback: %w", err)
	}
	stats.TotalFeedback = feedbackCount

	return &stats, nil
}
