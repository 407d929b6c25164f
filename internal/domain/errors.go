package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrScanNotFound        = errors.New("scan not found")
	ErrScanNotCompleted    = errors.New("scan has not completed yet")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrFeedbackNotFound    = errors.New("feedback record not found")
	ErrNotAMenu            = errors.New("content does not appear to be a menu")
	ErrContentBlocked      = errors.New("content blocked by moderation filter")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
)
