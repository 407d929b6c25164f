package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"menulens/internal/domain"
	"menulens/internal/port"
)

type feedbackRepo struct {
	db *sqlx.DB
}

// NewFeedbackRepo creates a new PostgreSQL-backed FeedbackRepository.
func NewFeedbackRepo(db *sqlx.DB) port.FeedbackRepository {
	return &feedbackRepo{db: db}
}

// feedbackRow mirrors the menu_feedback table; item sets live in JSONB
// columns and are marshaled explicitly.
type feedbackRow struct {
	ID             uuid.UUID `db:"id"`
	ImageID        string    `db:"image_id"`
	OriginalItems  []byte    `db:"original_items"`
	CorrectedItems []byte    `db:"corrected_items"`
	RestaurantName string    `db:"restaurant_name"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r *feedbackRepo) Create(ctx context.Context, rec *domain.FeedbackRecord) error {
	rec.CreatedAt = time.Now().UTC()

	original, err := json.Marshal(rec.OriginalItems)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Create marshal original: %w", err)
	}
	corrected, err := json.Marshal(rec.CorrectedItems)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Create marshal corrected: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO menu_feedback (id, image_id, original_items, corrected_items, restaurant_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.ImageID, original, corrected, rec.RestaurantName, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Create: %w", err)
	}
	return nil
}

func (r *feedbackRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error) {
	var row feedbackRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM menu_feedback WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("feedbackRepo.GetByID: %w", err)
	}
	rec, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("feedbackRepo.GetByID: %w", err)
	}
	return rec, nil
}

// ListAll returns the full feedback corpus for learning store rebuilds.
// Rows whose item JSON no longer decodes are skipped, not fatal.
func (r *feedbackRepo) ListAll(ctx context.Context) ([]domain.FeedbackRecord, error) {
	var rows []feedbackRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM menu_feedback ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("feedbackRepo.ListAll: %w", err)
	}

	records := make([]domain.FeedbackRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			log.Printf("feedbackRepo.ListAll: skipping record %s: %v", row.ID, err)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (r *feedbackRepo) ListByImage(ctx context.Context, imageID string) ([]domain.FeedbackRecord, error) {
	var rows []feedbackRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM menu_feedback WHERE image_id = $1 ORDER BY created_at", imageID)
	if err != nil {
		return nil, fmt.Errorf("feedbackRepo.ListByImage: %w", err)
	}

	records := make([]domain.FeedbackRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			log.Printf("feedbackRepo.ListByImage: skipping record %s: %v", row.ID, err)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (row *feedbackRow) toDomain() (*domain.FeedbackRecord, error) {
	rec := &domain.FeedbackRecord{
		ID:             row.ID,
		ImageID:        row.ImageID,
		RestaurantName: row.RestaurantName,
		CreatedAt:      row.CreatedAt,
	}
	if err := json.Unmarshal(row.OriginalItems, &rec.OriginalItems); err != nil {
		return nil, fmt.Errorf("decoding original items: %w", err)
	}
	if err := json.Unmarshal(row.CorrectedItems, &rec.CorrectedItems); err != nil {
		return nil, fmt.Errorf("decoding corrected items: %w", err)
	}
	return rec, nil
}
