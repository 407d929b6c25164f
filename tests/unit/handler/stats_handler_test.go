package handler_test

import (
	"encoding/json"
	"errors"
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

func newStatsHandler() (*handler.StatsHandler, *mocks.MockStatsService) {
	statsSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(statsSvc)
	return h, statsSvc
}

func TestStatsHandler_GetStats_Success(t *testing.T) {
	h, statsSvc := newStatsHandler()

	expected := &domain.Stats{
		TotalScans:       156,
		ScansQueued:      5,
		ScansProcessing:  2,
		ScansCompleted:   130,
		ScansRejected:    12,
		ScansFailed:      7,
		ValidMenus:       120,
		AvgMenuScore:     7.8,
		TotalRestaurants: 14,
		TotalFeedback:    40,
		LearnedPatterns:  22,
	}
	statsSvc.On("GetStats", mock.Anything).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody)
	setAuthContext(c, uuid.New(), "member")

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	statsSvc.AssertExpectations(t)
}

func TestStatsHandler_GetStats_MissingAuthContext(t *testing.T) {
	h, statsSvc := newStatsHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody)

	h.GetStats(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	statsSvc.AssertNotCalled(t, "GetStats", mock.Anything)
}

func TestStatsHandler_GetStats_ServiceError(t *testing.T) {
	h, statsSvc := newStatsHandler()

	statsSvc.On("GetStats", mock.Anything).Return(nil, errors.New("db error"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody)
	setAuthContext(c, uuid.New(), "admin")

	h.GetStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	statsSvc.AssertExpectations(t)
}
