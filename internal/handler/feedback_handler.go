package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menulens/internal/service"
)

// FeedbackHandler handles menu correction feedback endpoints.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit handles POST /api/v1/feedback
// @Summary Submit menu corrections
// @Description Submit corrected menu items for a scan; corrections feed the learning store
// @Tags feedback
// @Accept json
// @Produce json
// @Param input body service.SubmitFeedbackInput true "Original and corrected items"
// @Success 201 {object} Response{data=domain.FeedbackRecord} "Feedback recorded"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var input service.SubmitFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec, err := h.feedbackService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// GetByID handles GET /api/v1/feedback/:id
// @Summary Get feedback by ID
// @Tags feedback
// @Produce json
// @Param id path string true "Feedback ID (UUID)"
// @Success 200 {object} Response{data=domain.FeedbackRecord} "Feedback record"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Feedback not found"
// @Security BearerAuth
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) GetByID(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid feedback ID")
		return
	}

	rec, err := h.feedbackService.GetByID(c.Request.Context(), feedbackID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// ListByImage handles GET /api/v1/feedback?image_id=...
// @Summary List feedback for an image
// @Tags feedback
// @Produce json
// @Param image_id query string true "Image identifier"
// @Success 200 {object} Response{data=[]domain.FeedbackRecord} "Feedback records"
// @Failure 400 {object} ErrorResponseBody "Missing image_id"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /feedback [get]
func (h *FeedbackHandler) ListByImage(c *gin.Context) {
	imageID := c.Query("image_id")
	if imageID == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "image_id query parameter is required")
		return
	}

	records, err := h.feedbackService.ListByImage(c.Request.Context(), imageID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, records)
}

// Relearn handles POST /api/v1/feedback/relearn
// @Summary Rebuild the learning store
// @Description Reload all feedback and rebuild correction patterns (admin only)
// @Tags feedback
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Learning store rebuilt"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /feedback/relearn [post]
func (h *FeedbackHandler) Relearn(c *gin.Context) {
	if err := h.feedbackService.RebuildLearningStore(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "learning store rebuilt"})
}
