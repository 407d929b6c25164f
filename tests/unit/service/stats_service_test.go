package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menulens/internal/domain"
	"menulens/internal/menu/learning"
	"menulens/internal/service"
	"menulens/mocks"
)

func TestStatsService_GetStats_AddsLearnedPatternCount(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	learner := learning.NewStore(learning.DefaultConfig())
	learner.Initialize([]domain.FeedbackRecord{
		{
			OriginalItems: []domain.CorrectedItem{
				{ID: "1", MenuItem: domain.MenuItem{Name: "Grilied Salmon", Price: "S24.00"}},
			},
			CorrectedItems: []domain.CorrectedItem{
				{ID: "1", MenuItem: domain.MenuItem{Name: "Grilled Salmon", Price: "$24.00"}},
			},
		},
	})
	svc := service.NewStatsService(statsRepo, learner)

	statsRepo.On("GetStats", mock.Anything).Return(&domain.Stats{
		TotalScans:     42,
		ScansCompleted: 30,
		ValidMenus:     28,
		AvgMenuScore:   7.5,
	}, nil)

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalScans)
	assert.Greater(t, stats.LearnedPatterns, 0)
}

func TestStatsService_GetStats_RepoError(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(statsRepo, learning.NewStore(learning.DefaultConfig()))

	statsRepo.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.GetStats(context.Background())
	assert.Error(t, err)
}
