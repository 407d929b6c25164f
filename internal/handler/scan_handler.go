package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menulens/internal/domain"
	"menulens/internal/export"
	"menulens/internal/middleware"
	"menulens/internal/service"
)

// ScanHandler handles menu scan endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Upload handles POST /api/v1/scans
// @Summary Upload a menu photo
// @Description Upload a menu photo (JPG or PNG) and queue it for digitization
// @Tags scans
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Menu photo (JPG or PNG)"
// @Param restaurant_id formData string false "Restaurant ID to link the scan to"
// @Success 202 {object} Response{data=domain.MenuScan} "Scan queued"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /scans [post]
func (h *ScanHandler) Upload(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.UploadScanInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		CreatedBy:   userID,
	}

	if restaurantIDStr := c.PostForm("restaurant_id"); restaurantIDStr != "" {
		restaurantID, parseErr := uuid.Parse(restaurantIDStr)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid restaurant ID")
			return
		}
		input.RestaurantID = &restaurantID
	}

	scan, err := h.scanService.UploadAndQueue(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, scan)
}

// List handles GET /api/v1/scans
// @Summary List scans
// @Description List scans with pagination, optionally filtered by restaurant
// @Tags scans
// @Produce json
// @Param restaurant_id query string false "Filter by restaurant ID"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.MenuScan,meta=PagMeta} "List of scans"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /scans [get]
func (h *ScanHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		scans []domain.MenuScan
		total int
		err   error
	)
	if restaurantIDStr := c.Query("restaurant_id"); restaurantIDStr != "" {
		restaurantID, parseErr := uuid.Parse(restaurantIDStr)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid restaurant ID")
			return
		}
		scans, total, err = h.scanService.ListByRestaurant(c.Request.Context(), restaurantID, offset, limit)
	} else {
		scans, total, err = h.scanService.List(c.Request.Context(), offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/scans/:id
// @Summary Get scan by ID
// @Description Get a scan with its extracted items and a presigned image URL
// @Tags scans
// @Produce json
// @Param id path string true "Scan ID (UUID)"
// @Success 200 {object} Response{data=ScanWithImageURL} "Scan with image URL"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Security BearerAuth
// @Router /scans/{id} [get]
func (h *ScanHandler) GetByID(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	imageURL, err := h.scanService.GetImageURL(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"scan":      scan,
		"image_url": imageURL,
	})
}

// Delete handles DELETE /api/v1/scans/:id
// @Summary Delete a scan
// @Description Delete a scan and its stored image (admin only)
// @Tags scans
// @Produce json
// @Param id path string true "Scan ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Scan deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Security BearerAuth
// @Router /scans/{id} [delete]
func (h *ScanHandler) Delete(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	if err := h.scanService.Delete(c.Request.Context(), scanID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "scan deleted"})
}

// ExportCSV handles GET /api/v1/scans/:id/export/csv
// @Summary Export scan as CSV
// @Description Download the scan's menu items as a CSV file
// @Tags scans
// @Produce text/csv
// @Param id path string true "Scan ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or scan not completed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Security BearerAuth
// @Router /scans/{id}/export/csv [get]
func (h *ScanHandler) ExportCSV(c *gin.Context) {
	scan, items, ok := h.exportableScan(c)
	if !ok {
		return
	}

	filename := export.BuildFilename(scan.RestaurantName, "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}

	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteItems(items); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/scans/:id/export/xlsx
// @Summary Export scan as Excel
// @Description Download the scan's menu items as an Excel workbook
// @Tags scans
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Scan ID (UUID)"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or scan not completed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Scan not found"
// @Security BearerAuth
// @Router /scans/{id}/export/xlsx [get]
func (h *ScanHandler) ExportXLSX(c *gin.Context) {
	scan, items, ok := h.exportableScan(c)
	if !ok {
		return
	}

	filename := export.BuildFilename(scan.RestaurantName, "xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := export.WriteXLSX(c.Writer, scan.RestaurantName, items); err != nil {
		HandleError(c, err)
	}
}

// exportableScan loads the scan and its items for export endpoints. Writes an
// error response and returns ok=false when the scan is missing, unfinished, or
// its stored items cannot be decoded.
func (h *ScanHandler) exportableScan(c *gin.Context) (*domain.MenuScan, []domain.MenuItem, bool) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return nil, nil, false
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return nil, nil, false
	}

	if scan.Status != domain.ScanStatusCompleted {
		HandleError(c, domain.ErrScanNotCompleted)
		return nil, nil, false
	}

	var items []domain.MenuItem
	if len(scan.Items) > 0 {
		if err := json.Unmarshal(scan.Items, &items); err != nil {
			RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "stored items are unreadable")
			return nil, nil, false
		}
	}
	return scan, items, true
}
