package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MenuItem is a single entry extracted from a menu. An entry whose Name equals
// its Category (or whose Name is empty) is a category marker, not a dish.
// Price stays a display string because OCR output punctuates prices
// inconsistently; numeric parsing happens transiently inside correction logic.
type MenuItem struct {
	Name        string `json:"name,omitempty"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// IsCategoryMarker reports whether the entry is a section heading rather than
// a purchasable item. Markers never count toward validation scoring.
func (m MenuItem) IsCategoryMarker() bool {
	return m.Name == "" || m.Name == m.Category
}

// HasPrice reports whether the item carries a non-blank price.
func (m MenuItem) HasPrice() bool {
	return strings.TrimSpace(m.Price) != ""
}

// HasDescription reports whether the item carries a non-blank description.
func (m MenuItem) HasDescription() bool {
	return strings.TrimSpace(m.Description) != ""
}

// MenuOCRResult is the product of one OCR call. It is created once per scan
// and rewritten by each pipeline stage until returned to the caller.
type MenuOCRResult struct {
	MenuItems      []MenuItem      `json:"menu_items"`
	RawText        string          `json:"raw_text"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	Debug          json.RawMessage `json:"debug,omitempty"`
}

// CorrectedItem is a MenuItem carrying the identifier that pairs an original
// item with its corrected counterpart inside one feedback record.
type CorrectedItem struct {
	ID string `json:"id"`
	MenuItem
}

// FeedbackRecord is a user-submitted correction of a previous scan. Read-only
// input to the learning store; never mutated by the core.
type FeedbackRecord struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ImageID        string          `db:"image_id" json:"image_id"`
	OriginalItems  []CorrectedItem `db:"-" json:"original_items"`
	CorrectedItems []CorrectedItem `db:"-" json:"corrected_items"`
	RestaurantName string          `db:"restaurant_name" json:"restaurant_name,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// MenuScan represents one processed menu photo linked to its stored image.
type MenuScan struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	RestaurantID   *uuid.UUID      `db:"restaurant_id" json:"restaurant_id"`
	ImageKey       string          `db:"image_key" json:"image_key"`
	RawText        string          `db:"raw_text" json:"raw_text"`
	RestaurantName string          `db:"restaurant_name" json:"restaurant_name"`
	Items          json.RawMessage `db:"items" json:"items"`
	Status         ScanStatus      `db:"status" json:"status"`
	ScanError      string          `db:"scan_error" json:"scan_error"`
	ScanAttempts   int             `db:"scan_attempts" json:"scan_attempts"`
	IsValidMenu    bool            `db:"is_valid_menu" json:"is_valid_menu"`
	MenuScore      int             `db:"menu_score" json:"menu_score"`
	FilterSeverity Severity        `db:"filter_severity" json:"filter_severity"`
	ModelUsed      string          `db:"model_used" json:"model_used"`
	ScannedAt      *time.Time      `db:"scanned_at" json:"scanned_at"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Restaurant groups scans of the same establishment.
type Restaurant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Stats aggregates scan counts for the dashboard.
type Stats struct {
	TotalScans       int     `db:"total_scans" json:"total_scans"`
	ScansQueued      int     `db:"scans_queued" json:"scans_queued"`
	ScansProcessing  int     `db:"scans_processing" json:"scans_processing"`
	ScansCompleted   int     `db:"scans_completed" json:"scans_completed"`
	ScansRejected    int     `db:"scans_rejected" json:"scans_rejected"`
	ScansFailed      int     `db:"scans_failed" json:"scans_failed"`
	ValidMenus       int     `db:"valid_menus" json:"valid_menus"`
	AvgMenuScore     float64 `db:"avg_menu_score" json:"avg_menu_score"`
	TotalRestaurants int     `db:"-" json:"total_restaurants"`
	TotalFeedback    int     `db:"-" json:"total_feedback"`
	LearnedPatterns  int     `db:"-" json:"learned_patterns"`
}

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
