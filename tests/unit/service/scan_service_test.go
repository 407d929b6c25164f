package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menulens/internal/config"
	"menulens/internal/domain"
	"menulens/internal/menu/learning"
	"menulens/internal/ocr"
	"menulens/internal/port"
	"menulens/internal/service"
	"menulens/mocks"
)

func newScanService() (service.ScanService, *mocks.MockScanRepo, *mocks.MockObjectStorage, *mocks.MockMenuOCR, *mocks.MockEmailSender) {
	scanRepo := new(mocks.MockScanRepo)
	storage := new(mocks.MockObjectStorage)
	ocrClient := new(mocks.MockMenuOCR)
	email := new(mocks.MockEmailSender)

	pipeline := service.NewPipeline(learning.NewStore(learning.DefaultConfig()))

	s3cfg := config.S3Config{
		Bucket:        "menulens-images",
		MaxFileSizeMB: 10,
		PresignExpiry: 900,
	}
	emailCfg := config.EmailConfig{
		ModerationAddress: "moderation@menulens.test",
	}

	svc := service.NewScanService(scanRepo, storage, ocrClient, email, pipeline, s3cfg, emailCfg)
	return svc, scanRepo, storage, ocrClient, email
}

const structurePayload = `{
	"isMenu": true,
	"restaurantName": "Harbor Grill",
	"menuSections": [
		{
			"sectionName": "Appetizers",
			"items": [
				{"name": "Grilled Shrimp", "price": "$12.00", "description": "Shrimp grilled with garlic butter"},
				{"name": "Tomato Soup", "price": "$8.00", "description": "Creamy tomato soup with basil"}
			]
		},
		{
			"sectionName": "Mains",
			"items": [
				{"name": "Grilled Salmon", "price": "$24.00", "description": "Salmon fillet with roasted vegetables"},
				{"name": "Classic Burger", "price": "$16.00", "description": "Beef patty with cheese and fries"}
			]
		}
	]
}`

func TestScanService_UploadAndQueue_Success(t *testing.T) {
	svc, scanRepo, storage, _, _ := newScanService()

	userID := uuid.New()

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "menulens-images" && strings.HasPrefix(in.Key, "menus/") && strings.HasSuffix(in.Key, ".jpg")
	})).Return(&port.UploadOutput{Location: "s3://menulens-images/menus/x.jpg"}, nil)
	scanRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MenuScan")).Return(nil)

	scan, err := svc.UploadAndQueue(context.Background(), service.UploadScanInput{
		FileName:    "menu.JPG",
		ContentType: "image/jpeg",
		Size:        1024,
		Body:        strings.NewReader("fake image bytes"),
		CreatedBy:   userID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScanStatusQueued, scan.Status)
	assert.Equal(t, userID, scan.CreatedBy)
	assert.Equal(t, json.RawMessage("[]"), scan.Items)
	assert.True(t, strings.HasPrefix(scan.ImageKey, "menus/"))
	storage.AssertExpectations(t)
	scanRepo.AssertExpectations(t)
}

func TestScanService_UploadAndQueue_UnsupportedType(t *testing.T) {
	svc, _, storage, _, _ := newScanService()

	_, err := svc.UploadAndQueue(context.Background(), service.UploadScanInput{
		FileName:    "menu.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Body:        strings.NewReader("%PDF"),
		CreatedBy:   uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestScanService_UploadAndQueue_FileTooLarge(t *testing.T) {
	svc, _, storage, _, _ := newScanService()

	_, err := svc.UploadAndQueue(context.Background(), service.UploadScanInput{
		FileName:    "menu.png",
		ContentType: "image/png",
		Size:        11 * 1024 * 1024,
		Body:        strings.NewReader("big"),
		CreatedBy:   uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestScanService_UploadAndQueue_UploadFailure(t *testing.T) {
	svc, scanRepo, storage, _, _ := newScanService()

	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("connection reset"))

	_, err := svc.UploadAndQueue(context.Background(), service.UploadScanInput{
		FileName:    "menu.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Body:        strings.NewReader("bytes"),
		CreatedBy:   uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	scanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScanService_ProcessScan_CompletedValidMenu(t *testing.T) {
	svc, scanRepo, storage, ocrClient, _ := newScanService()

	scan := &domain.MenuScan{
		ID:       uuid.New(),
		ImageKey: "menus/abc.jpg",
		Status:   domain.ScanStatusProcessing,
	}

	storage.On("Download", mock.Anything, "menulens-images", "menus/abc.jpg").
		Return([]byte("image bytes"), nil)
	ocrClient.On("ExtractMenu", mock.Anything, mock.MatchedBy(func(in port.OCRInput) bool {
		return in.ContentType == "image/jpeg" && len(in.ImageBytes) > 0
	})).Return(&port.OCROutput{
		RawText:   "Harbor Grill menu text",
		Structure: json.RawMessage(structurePayload),
		ModelUsed: "pixtral-12b-2409",
	}, nil)

	var saved *domain.MenuScan
	scanRepo.On("UpdateResult", mock.Anything, mock.AnythingOfType("*domain.MenuScan")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.MenuScan)
		}).
		Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	require.NotNil(t, saved)
	assert.Equal(t, domain.ScanStatusCompleted, saved.Status)
	assert.True(t, saved.IsValidMenu)
	assert.GreaterOrEqual(t, saved.MenuScore, 5)
	assert.Equal(t, "Harbor Grill", saved.RestaurantName)
	assert.Equal(t, "pixtral-12b-2409", saved.ModelUsed)
	assert.Empty(t, saved.ScanError)
	require.NotNil(t, saved.ScannedAt)
	assert.WithinDuration(t, time.Now().UTC(), *saved.ScannedAt, time.Minute)

	var items []domain.MenuItem
	require.NoError(t, json.Unmarshal(saved.Items, &items))
	// Two section markers plus four dishes
	assert.Len(t, items, 6)
	assert.True(t, items[0].IsCategoryMarker())
	assert.Equal(t, "Appetizers", items[0].Category)
}

func TestScanService_ProcessScan_RejectsNonMenuText(t *testing.T) {
	svc, scanRepo, storage, ocrClient, _ := newScanService()

	scan := &domain.MenuScan{
		ID:       uuid.New(),
		ImageKey: "menus/receipt.png",
		Status:   domain.ScanStatusProcessing,
	}

	storage.On("Download", mock.Anything, "menulens-images", "menus/receipt.png").
		Return([]byte("image bytes"), nil)
	ocrClient.On("ExtractMenu", mock.Anything, mock.AnythingOfType("port.OCRInput")).
		Return(&port.OCROutput{
			RawText:   "lorem ipsum dolor sit amet consectetur adipiscing elit",
			ModelUsed: "gpt-4o-mini",
		}, nil)

	var saved *domain.MenuScan
	scanRepo.On("UpdateResult", mock.Anything, mock.AnythingOfType("*domain.MenuScan")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.MenuScan)
		}).
		Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	require.NotNil(t, saved)
	assert.Equal(t, domain.ScanStatusRejected, saved.Status)
	assert.False(t, saved.IsValidMenu)
	assert.NotEmpty(t, saved.ScanError)
}

func TestScanService_ProcessScan_ContentBlockedSendsAlert(t *testing.T) {
	svc, scanRepo, storage, ocrClient, email := newScanService()

	restaurantID := uuid.New()
	scan := &domain.MenuScan{
		ID:           uuid.New(),
		RestaurantID: &restaurantID,
		ImageKey:     "menus/graffiti.jpg",
		Status:       domain.ScanStatusProcessing,
	}

	blocked := `{
		"isMenu": true,
		"menuSections": [
			{
				"sectionName": "Mains",
				"items": [
					{"name": "Damn Good Wings", "price": "$14.00", "description": "Fried chicken wings"}
				]
			}
		]
	}`

	storage.On("Download", mock.Anything, "menulens-images", "menus/graffiti.jpg").
		Return([]byte("image bytes"), nil)
	ocrClient.On("ExtractMenu", mock.Anything, mock.AnythingOfType("port.OCRInput")).
		Return(&port.OCROutput{RawText: "wings", Structure: json.RawMessage(blocked), ModelUsed: "pixtral-12b-2409"}, nil)

	var saved *domain.MenuScan
	scanRepo.On("UpdateResult", mock.Anything, mock.AnythingOfType("*domain.MenuScan")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.MenuScan)
		}).
		Return(nil)
	email.On("SendModerationAlert", mock.Anything, "moderation@menulens.test", mock.MatchedBy(func(alert port.ModerationAlert) bool {
		return alert.ScanID == scan.ID.String() && alert.RestaurantID == restaurantID.String() && len(alert.MatchedTerms) > 0
	})).Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	require.NotNil(t, saved)
	assert.Equal(t, domain.ScanStatusRejected, saved.Status)
	assert.Equal(t, domain.SeverityError, saved.FilterSeverity)
	assert.Equal(t, "content blocked by moderation filter", saved.ScanError)
	email.AssertExpectations(t)
}

func TestScanService_ProcessScan_RateLimitRequeues(t *testing.T) {
	svc, scanRepo, storage, ocrClient, _ := newScanService()

	scan := &domain.MenuScan{
		ID:           uuid.New(),
		ImageKey:     "menus/busy.jpg",
		Status:       domain.ScanStatusProcessing,
		ScanAttempts: 1,
	}

	storage.On("Download", mock.Anything, "menulens-images", "menus/busy.jpg").
		Return([]byte("image bytes"), nil)
	ocrClient.On("ExtractMenu", mock.Anything, mock.AnythingOfType("port.OCRInput")).
		Return(nil, &ocr.RateLimitError{Err: errors.New("429"), RetryAfter: 30 * time.Second, Provider: "mistral"})
	scanRepo.On("UpdateFailure", mock.Anything, scan.ID, mock.AnythingOfType("string"), true).
		Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	scanRepo.AssertExpectations(t)
	scanRepo.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything)
}

func TestScanService_ProcessScan_RateLimitExhausted(t *testing.T) {
	svc, scanRepo, storage, ocrClient, _ := newScanService()

	scan := &domain.MenuScan{
		ID:           uuid.New(),
		ImageKey:     "menus/busy.jpg",
		Status:       domain.ScanStatusProcessing,
		ScanAttempts: 3,
	}

	storage.On("Download", mock.Anything, "menulens-images", "menus/busy.jpg").
		Return([]byte("image bytes"), nil)
	ocrClient.On("ExtractMenu", mock.Anything, mock.AnythingOfType("port.OCRInput")).
		Return(nil, &ocr.RateLimitError{Err: errors.New("429"), RetryAfter: 30 * time.Second, Provider: "mistral"})
	scanRepo.On("UpdateFailure", mock.Anything, scan.ID, mock.AnythingOfType("string"), false).
		Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	scanRepo.AssertExpectations(t)
}

func TestScanService_ProcessScan_DownloadFailure(t *testing.T) {
	svc, scanRepo, storage, ocrClient, _ := newScanService()

	scan := &domain.MenuScan{
		ID:       uuid.New(),
		ImageKey: "menus/gone.jpg",
		Status:   domain.ScanStatusProcessing,
	}

	storage.On("Download", mock.Anything, "menulens-images", "menus/gone.jpg").
		Return(nil, errors.New("no such key"))
	scanRepo.On("UpdateFailure", mock.Anything, scan.ID, mock.AnythingOfType("string"), false).
		Return(nil)

	svc.ProcessScan(context.Background(), scan, 3)

	scanRepo.AssertExpectations(t)
	ocrClient.AssertNotCalled(t, "ExtractMenu", mock.Anything, mock.Anything)
}

func TestScanService_GetImageURL(t *testing.T) {
	svc, scanRepo, storage, _, _ := newScanService()

	scanID := uuid.New()
	scanRepo.On("GetByID", mock.Anything, scanID).
		Return(&domain.MenuScan{ID: scanID, ImageKey: "menus/abc.jpg"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "menulens-images", "menus/abc.jpg", int64(900)).
		Return("https://signed.example/menus/abc.jpg", nil)

	url, err := svc.GetImageURL(context.Background(), scanID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/menus/abc.jpg", url)
}

func TestScanService_Delete_RemovesImage(t *testing.T) {
	svc, scanRepo, storage, _, _ := newScanService()

	scanID := uuid.New()
	scanRepo.On("GetByID", mock.Anything, scanID).
		Return(&domain.MenuScan{ID: scanID, ImageKey: "menus/abc.jpg"}, nil)
	storage.On("Delete", mock.Anything, "menulens-images", "menus/abc.jpg").Return(nil)
	scanRepo.On("Delete", mock.Anything, scanID).Return(nil)

	err := svc.Delete(context.Background(), scanID)

	require.NoError(t, err)
	scanRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}
