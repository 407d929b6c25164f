package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"menulens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row shared by CSV and XLSX output.
var columns = []string{
	"Section",
	"Item Name",
	"Price",
	"Description",
}

// CSVWriter wraps csv.Writer for exporting menu items as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems converts a batch of menu items to CSV rows and writes them.
// Category markers become section rows with the remaining columns empty.
func (w *CSVWriter) WriteItems(items []domain.MenuItem) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// itemToRow converts a single menu item to a row matching columns.
func itemToRow(item *domain.MenuItem) []string {
	row := make([]string, len(columns))
	row[0] = item.Category
	if item.IsCategoryMarker() {
		return row
	}
	row[1] = item.Name
	row[2] = item.Price
	row[3] = item.Description
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a restaurant name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_restaurant_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(restaurantName, ext string) string {
	sanitized := SanitizeFilename(restaurantName)
	if sanitized == "" {
		sanitized = "menu"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
