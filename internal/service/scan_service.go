package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"menulens/internal/config"
	"menulens/internal/domain"
	"menulens/internal/menu/correction"
	"menulens/internal/menu/filter"
	"menulens/internal/menu/learning"
	"menulens/internal/menu/normalize"
	"menulens/internal/menu/textparse"
	"menulens/internal/menu/validate"
	"menulens/internal/ocr"
	"menulens/internal/port"
)

// Pipeline bundles the heuristic core components applied to every scan, in
// order: parse/normalize, deterministic corrections, learned corrections,
// validation, content filtering.
type Pipeline struct {
	Parser    *textparse.Parser
	Corrector *correction.Engine
	Learner   *learning.Store
	Validator *validate.Validator
	Filter    *filter.Filter
}

// NewPipeline creates a Pipeline with production configuration around an
// injected learning store.
func NewPipeline(learner *learning.Store) Pipeline {
	return Pipeline{
		Parser:    textparse.NewParser(textparse.DefaultConfig()),
		Corrector: correction.NewEngine(correction.DefaultConfig()),
		Learner:   learner,
		Validator: validate.NewValidator(validate.DefaultConfig()),
		Filter:    filter.NewFilter(filter.DefaultConfig()),
	}
}

// UploadScanInput is the DTO for uploading a menu photo.
type UploadScanInput struct {
	FileName     string
	ContentType  string
	Size         int64
	Body         io.Reader
	RestaurantID *uuid.UUID
	CreatedBy    uuid.UUID
}

// ScanService defines the menu scan contract.
type ScanService interface {
	UploadAndQueue(ctx context.Context, input UploadScanInput) (*domain.MenuScan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error)
	List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error)
	GetImageURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ProcessScan(ctx context.Context, scan *domain.MenuScan, maxAttempts int)
}

type scanService struct {
	scanRepo port.ScanRepository
	storage  port.ObjectStorage
	ocr      port.MenuOCR
	email    port.EmailSender
	pipeline Pipeline
	s3cfg    config.S3Config
	emailCfg config.EmailConfig
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	scanRepo port.ScanRepository,
	storage port.ObjectStorage,
	ocrClient port.MenuOCR,
	emailSender port.EmailSender,
	pipeline Pipeline,
	s3cfg config.S3Config,
	emailCfg config.EmailConfig,
) ScanService {
	return &scanService{
		scanRepo: scanRepo,
		storage:  storage,
		ocr:      ocrClient,
		email:    emailSender,
		pipeline: pipeline,
		s3cfg:    s3cfg,
		emailCfg: emailCfg,
	}
}

func (s *scanService) UploadAndQueue(ctx context.Context, input UploadScanInput) (*domain.MenuScan, error) {
	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	scanID := uuid.New()
	key := fmt.Sprintf("menus/%s%s", scanID, strings.ToLower(filepath.Ext(input.FileName)))

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: input.ContentType,
		Size:        input.Size,
	})
	if err != nil {
		log.Printf("scanService.UploadAndQueue: upload failed: %v", err)
		return nil, domain.ErrUploadFailed
	}

	scan := &domain.MenuScan{
		ID:           scanID,
		RestaurantID: input.RestaurantID,
		ImageKey:     key,
		Items:        json.RawMessage("[]"),
		Status:       domain.ScanStatusQueued,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("scanService.UploadAndQueue: %w", err)
	}
	return scan, nil
}

func (s *scanService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	return s.scanRepo.GetByID(ctx, id)
}

func (s *scanService) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	return s.scanRepo.List(ctx, offset, limit)
}

func (s *scanService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]domain.MenuScan, int, error) {
	return s.scanRepo.ListByRestaurant(ctx, restaurantID, offset, limit)
}

func (s *scanService) GetImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	scan, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, scan.ImageKey, s.s3cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("scanService.GetImageURL: %w", err)
	}
	return url, nil
}

func (s *scanService) Delete(ctx context.Context, id uuid.UUID) error {
	scan, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, scan.ImageKey); err != nil {
		log.Printf("scanService.Delete: deleting image %s: %v", scan.ImageKey, err)
	}
	return s.scanRepo.Delete(ctx, id)
}

// ProcessScan runs OCR and the correction pipeline for one claimed scan and
// persists the outcome. Called from the queue worker; never returns an error
// because every failure path is recorded on the scan itself.
func (s *scanService) ProcessScan(ctx context.Context, scan *domain.MenuScan, maxAttempts int) {
	imageBytes, err := s.storage.Download(ctx, s.s3cfg.Bucket, scan.ImageKey)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("downloading image: %v", err), false)
		return
	}

	contentType := domain.ContentTypeForKey(scan.ImageKey)
	output, err := s.ocr.ExtractMenu(ctx, port.OCRInput{
		ImageBytes:  imageBytes,
		ContentType: contentType,
	})
	if err != nil {
		s.handleOCRError(ctx, scan, err, maxAttempts)
		return
	}

	result := s.buildResult(output)
	result.MenuItems = s.pipeline.Corrector.Correct(result.MenuItems)
	result = s.pipeline.Learner.Apply(result)

	validation := s.pipeline.Validator.Validate(result.MenuItems)
	filtered := s.pipeline.Filter.FilterItems(result.MenuItems)

	itemsJSON, err := json.Marshal(filtered.Items)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("encoding items: %v", err), false)
		return
	}

	now := time.Now().UTC()
	scan.RawText = result.RawText
	scan.RestaurantName = result.RestaurantName
	scan.Items = itemsJSON
	scan.IsValidMenu = validation.IsValid
	scan.MenuScore = validation.Score
	scan.ModelUsed = output.ModelUsed
	scan.ScannedAt = &now
	scan.ScanError = ""

	switch {
	case filtered.HasErrors:
		scan.Status = domain.ScanStatusRejected
		scan.FilterSeverity = domain.SeverityError
		scan.ScanError = "content blocked by moderation filter"
		s.sendModerationAlert(ctx, scan, filtered.Profanity)
	case !validation.IsValid:
		scan.Status = domain.ScanStatusRejected
		scan.FilterSeverity = batchSeverity(filtered)
		scan.ScanError = strings.Join(validation.Errors, "; ")
	default:
		scan.Status = domain.ScanStatusCompleted
		scan.FilterSeverity = batchSeverity(filtered)
	}

	if err := s.scanRepo.UpdateResult(ctx, scan); err != nil {
		log.Printf("scanService.ProcessScan: failed to save results for %s: %v", scan.ID, err)
		return
	}
	log.Printf("scanService.ProcessScan: scan %s finished (status=%s, score=%d, items=%d)",
		scan.ID, scan.Status, scan.MenuScore, len(filtered.Items))
}

// buildResult turns a provider output into the pipeline's working result.
// Providers that return a section tree are normalized; anything else falls
// back to the heuristic text parser on the raw text.
func (s *scanService) buildResult(output *port.OCROutput) domain.MenuOCRResult {
	result := domain.MenuOCRResult{RawText: output.RawText}

	if len(output.Structure) > 0 {
		structure, err := normalize.Parse(output.Structure)
		if err == nil {
			result.RestaurantName = structure.RestaurantName
			result.MenuItems = normalize.Flatten(*structure)
			if !structure.IsMenu {
				return result
			}
			if len(result.MenuItems) > 0 {
				return result
			}
		} else {
			log.Printf("scanService.buildResult: unusable structure, falling back to text parser: %v", err)
		}
	}

	result.MenuItems = s.pipeline.Parser.Parse(output.RawText)
	return result
}

// handleOCRError requeues the scan when the provider was rate limited and
// attempts remain; otherwise the scan fails permanently.
func (s *scanService) handleOCRError(ctx context.Context, scan *domain.MenuScan, ocrErr error, maxAttempts int) {
	var rlErr *ocr.RateLimitError
	if errors.As(ocrErr, &rlErr) && scan.ScanAttempts < maxAttempts {
		s.failScan(ctx, scan, fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider), true)
		return
	}
	s.failScan(ctx, scan, fmt.Sprintf("extracting menu: %v", ocrErr), false)
}

func (s *scanService) failScan(ctx context.Context, scan *domain.MenuScan, msg string, requeue bool) {
	log.Printf("scanService: scan %s failed: %s (requeue=%t)", scan.ID, msg, requeue)
	if err := s.scanRepo.UpdateFailure(ctx, scan.ID, msg, requeue); err != nil {
		log.Printf("scanService.failScan: failed to record failure for %s: %v", scan.ID, err)
	}
}

func (s *scanService) sendModerationAlert(ctx context.Context, scan *domain.MenuScan, terms []string) {
	if s.email == nil || s.emailCfg.ModerationAddress == "" {
		return
	}
	restaurantID := ""
	if scan.RestaurantID != nil {
		restaurantID = scan.RestaurantID.String()
	}
	alert := port.ModerationAlert{
		ScanID:       scan.ID.String(),
		RestaurantID: restaurantID,
		MatchedTerms: terms,
	}
	if err := s.email.SendModerationAlert(ctx, s.emailCfg.ModerationAddress, alert); err != nil {
		log.Printf("scanService.sendModerationAlert: %v", err)
	}
}

func batchSeverity(batch filter.BatchResult) domain.Severity {
	switch {
	case batch.HasErrors:
		return domain.SeverityError
	case batch.HasWarnings:
		return domain.SeverityWarning
	default:
		return domain.SeverityNone
	}
}
