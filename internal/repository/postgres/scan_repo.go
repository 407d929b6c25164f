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

type scanRepo struct {
	db *sqlx.DB
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB) port.ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(ctx context.Context, scan *domain.MenuScan) error {
	now := time.Now().UTC()
	scan.CreatedAt = now
	scan.UpdatedAt = now

	query := `INSERT INTO menu_scans (
		id, restaurant_id, image_key, raw_text, restaurant_name,
		items, status, scan_error, scan_attempts,
		is_valid_menu, menu_score, filter_severity, model_used, scanned_at,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14,
		$15, $16, $17
	)`

	_, err := r.db.ExecContext(ctx, query,
		scan.ID, scan.RestaurantID, scan.ImageKey, scan.RawText, scan.RestaurantName,
		scan.Items, scan.Status, scan.ScanError, scan.ScanAttempts,
		scan.IsValidMenu, scan.MenuScore, scan.FilterSeverity, scan.ModelUsed, scan.ScannedAt,
		scan.CreatedBy, scan.CreatedAt, scan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("scanRepo.Create: %w", err)
	}
	return nil
}

func (r *scanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	var scan domain.MenuScan
	err := r.db.GetContext(ctx, &scan, "SELECT * FROM menu_scans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScanNotFound
		}
		return nil, fmt.Errorf("scanRepo.GetByID: %w", err)
	}
	return &scan, nil
}

func (r *scanRepo) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM menu_scans")
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.List count: %w", err)
	}

	var scans []domain.MenuScan
	err = r.db.SelectContext(ctx, &scans,
		"SELECT * FROM menu_scans ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.List: %w", err)
	}
	return scans, total, nil
}

func (r *scanRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM menu_scans WHERE restaurant_id = $1", restaurantID)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByRestaurant count: %w", err)
	}

	var scans []domain.MenuScan
	err = r.db.SelectContext(ctx, &scans,
		`SELECT * FROM menu_scans WHERE restaurant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		restaurantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByRestaurant: %w", err)
	}
	return scans, total, nil
}

// ClaimQueued atomically flips up to limit queued scans to processing and
// returns them. SKIP LOCKED keeps concurrent workers from claiming the same
// rows.
func (r *scanRepo) ClaimQueued(ctx context.Context, maxAttempts, limit int) ([]domain.MenuScan, error) {
	query := `UPDATE menu_scans SET status = 'processing', updated_at = NOW()
		WHERE id IN (
			SELECT id FROM menu_scans
			WHERE status = 'queued' AND scan_attempts < $1
			ORDER BY created_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var scans []domain.MenuScan
	if err := r.db.SelectContext(ctx, &scans, query, maxAttempts, limit); err != nil {
		return nil, fmt.Errorf("scanRepo.ClaimQueued: %w", err)
	}
	return scans, nil
}

func (r *scanRepo) UpdateResult(ctx context.Context, scan *domain.MenuScan) error {
	scan.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE menu_scans SET
			raw_text = $1, restaurant_name = $2, items = $3,
			status = $4, scan_error = $5, scan_attempts = $6,
			is_valid_menu = $7, menu_score = $8, filter_severity = $9,
			model_used = $10, scanned_at = $11, updated_at = $12
		 WHERE id = $13`,
		scan.RawText, scan.RestaurantName, scan.Items,
		scan.Status, scan.ScanError, scan.ScanAttempts,
		scan.IsValidMenu, scan.MenuScore, scan.FilterSeverity,
		scan.ModelUsed, scan.ScannedAt, scan.UpdatedAt, scan.ID)
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateResult: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateResult rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrScanNotFound
	}
	return nil
}

func (r *scanRepo) UpdateFailure(ctx context.Context, id uuid.UUID, scanError string, requeue bool) error {
	status := domain.ScanStatusFailed
	if requeue {
		status = domain.ScanStatusQueued
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE menu_scans SET
			status = $1, scan_error = $2, scan_attempts = scan_attempts + 1, updated_at = NOW()
		 WHERE id = $3`,
		status, scanError, id)
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateFailure: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateFailure rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrScanNotFound
	}
	return nil
}

func (r *scanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM menu_scans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("scanRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("scanRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrScanNotFound
	}
	return nil
}
