package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"menulens/internal/domain"
	"menulens/internal/menu/learning"
	"menulens/internal/port"
)

// SubmitFeedbackInput is the DTO for submitting corrected menu items.
type SubmitFeedbackInput struct {
	ImageID        string                 `json:"image_id" binding:"required"`
	OriginalItems  []domain.CorrectedItem `json:"original_items" binding:"required"`
	CorrectedItems []domain.CorrectedItem `json:"corrected_items" binding:"required"`
	RestaurantName string                 `json:"restaurant_name"`
}

// FeedbackService defines the feedback contract. Submitted corrections feed
// the learning store, which is rebuilt from the full history after every
// submission.
type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*domain.FeedbackRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error)
	ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error)
	RebuildLearningStore(ctx context.Context) error
	StartPeriodicRebuild(ctx context.Context, interval time.Duration)
}

type feedbackService struct {
	feedbackRepo port.FeedbackRepository
	learner      *learning.Store
}

// NewFeedbackService creates a new FeedbackService implementation.
func NewFeedbackService(feedbackRepo port.FeedbackRepository, learner *learning.Store) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		learner:      learner,
	}
}

func (s *feedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*domain.FeedbackRecord, error) {
	rec := &domain.FeedbackRecord{
		ID:             uuid.New(),
		ImageID:        input.ImageID,
		OriginalItems:  input.OriginalItems,
		CorrectedItems: input.CorrectedItems,
		RestaurantName: input.RestaurantName,
	}
	if err := s.feedbackRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("feedbackService.Submit: %w", err)
	}

	if err := s.RebuildLearningStore(ctx); err != nil {
		log.Printf("feedbackService.Submit: learning store rebuild failed: %v", err)
	}
	return rec, nil
}

func (s *feedbackService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error) {
	return s.feedbackRepo.GetByID(ctx, id)
}

func (s *feedbackService) ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error) {
	return s.feedbackRepo.ListByImage(ctx, imageID)
}

// RebuildLearningStore reloads the full feedback history and reinitializes
// the learning store. The store publishes the new pattern set atomically, so
// in-flight scans keep using the previous one.
func (s *feedbackService) RebuildLearningStore(ctx context.Context) error {
	records, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("feedbackService.RebuildLearningStore: %w", err)
	}
	s.learner.Initialize(records)
	return nil
}

// StartPeriodicRebuild refreshes the learning store on a fixed interval until
// the context is cancelled. Keeps multi-instance deployments converging on
// feedback written by other instances.
func (s *feedbackService) StartPeriodicRebuild(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RebuildLearningStore(ctx); err != nil {
					log.Printf("feedbackService: periodic rebuild failed: %v", err)
				}
			}
		}
	}()
}
