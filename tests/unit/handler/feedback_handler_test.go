package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menulens/internal/domain"
	"menulens/internal/handler"
	"menulens/mocks"
)

func newFeedbackHandler() (*handler.FeedbackHandler, *mocks.MockFeedbackService) {
	feedbackSvc := new(mocks.MockFeedbackService)
	h := handler.NewFeedbackHandler(feedbackSvc)
	return h, feedbackSvc
}

func TestFeedbackHandler_Submit_Success(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	rec := &domain.FeedbackRecord{ID: uuid.New(), ImageID: "menus/abc.jpg"}
	feedbackSvc.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitFeedbackInput")).
		Return(rec, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/feedback", gin.H{
		"image_id": "menus/abc.jpg",
		"original_items": []gin.H{
			{"id": "1", "name": "Grilied Salmon", "price": "S24.00"},
		},
		"corrected_items": []gin.H{
			{"id": "1", "name": "Grilled Salmon", "price": "$24.00"},
		},
	})
	setAuthContext(c, uuid.New(), "member")

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	feedbackSvc.AssertExpectations(t)
}

func TestFeedbackHandler_Submit_MissingImageID(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/feedback", gin.H{
		"original_items":  []gin.H{{"id": "1", "name": "A"}},
		"corrected_items": []gin.H{{"id": "1", "name": "B"}},
	})
	setAuthContext(c, uuid.New(), "member")

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	feedbackSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestFeedbackHandler_GetByID_Success(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	feedbackID := uuid.New()
	feedbackSvc.On("GetByID", mock.Anything, feedbackID).
		Return(&domain.FeedbackRecord{ID: feedbackID, ImageID: "menus/abc.jpg"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/feedback/"+feedbackID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: feedbackID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedbackHandler_GetByID_NotFound(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	feedbackID := uuid.New()
	feedbackSvc.On("GetByID", mock.Anything, feedbackID).
		Return(nil, domain.ErrFeedbackNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/feedback/"+feedbackID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: feedbackID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackHandler_ListByImage_RequiresImageID(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/feedback", http.NoBody)

	h.ListByImage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	feedbackSvc.AssertNotCalled(t, "ListByImage", mock.Anything, mock.Anything)
}

func TestFeedbackHandler_ListByImage_Success(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	records := []domain.FeedbackRecord{{ID: uuid.New(), ImageID: "menus/abc.jpg"}}
	feedbackSvc.On("ListByImage", mock.Anything, "menus/abc.jpg").Return(records, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/feedback?image_id=menus/abc.jpg", http.NoBody)

	h.ListByImage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	feedbackSvc.AssertExpectations(t)
}

func TestFeedbackHandler_Relearn_Success(t *testing.T) {
	h, feedbackSvc := newFeedbackHandler()

	feedbackSvc.On("RebuildLearningStore", mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/feedback/relearn", http.NoBody)
	setAuthContext(c, uuid.New(), "admin")

	h.Relearn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "learning store rebuilt")
	feedbackSvc.AssertExpectations(t)
}
