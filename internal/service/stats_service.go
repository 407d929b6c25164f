package service

import (
	"context"

	"menulens/internal/domain"
	"menulens/internal/menu/learning"
	"menulens/internal/port"
)

// StatsService provides aggregate statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	learner   *learning.Store
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, learner *learning.Store) StatsService {
	return &statsService{statsRepo: statsRepo, learner: learner}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.learner != nil {
		stats.LearnedPatterns = len(s.learner.Patterns())
	}
	return stats, nil
}
