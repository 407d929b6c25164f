package domain

import "strings"

// FileType represents the allowed photo types for upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// ContentTypeForKey derives the MIME content type from a stored object key's
// extension. Unknown extensions default to image/jpeg.
func ContentTypeForKey(key string) string {
	idx := strings.LastIndex(key, ".")
	if idx < 0 {
		return "image/jpeg"
	}
	if ft, ok := AllowedExtensions[strings.ToLower(key[idx+1:])]; ok && ft == FileTypePNG {
		return "image/png"
	}
	return "image/jpeg"
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// ScanStatus represents the lifecycle of a menu scan.
type ScanStatus string

const (
	ScanStatusQueued     ScanStatus = "queued"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusCompleted  ScanStatus = "completed"
	ScanStatusRejected   ScanStatus = "rejected"
	ScanStatusFailed     ScanStatus = "failed"
)

// Severity grades content-filter findings.
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if s == SeverityError || other == SeverityError {
		return SeverityError
	}
	if s == SeverityWarning || other == SeverityWarning {
		return SeverityWarning
	}
	return SeverityNone
}
