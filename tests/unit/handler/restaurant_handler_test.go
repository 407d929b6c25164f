package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"menulens/internal/domain"
	"menulens/internal/handler"
	"menulens/mocks"
)

func newRestaurantHandler() (*handler.RestaurantHandler, *mocks.MockRestaurantService) {
	restaurantSvc := new(mocks.MockRestaurantService)
	h := handler.NewRestaurantHandler(restaurantSvc)
	return h, restaurantSvc
}

func TestRestaurantHandler_Create_Success(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	r := &domain.Restaurant{ID: uuid.New(), Name: "Harbor Grill", City: "Seattle"}
	restaurantSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateRestaurantInput")).
		Return(r, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/restaurants", gin.H{
		"name": "Harbor Grill",
		"city": "Seattle",
	})
	setAuthContext(c, uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	restaurantSvc.AssertExpectations(t)
}

func TestRestaurantHandler_Create_MissingName(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/restaurants", gin.H{
		"city": "Seattle",
	})
	setAuthContext(c, uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	restaurantSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRestaurantHandler_GetByID_NotFound(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	id := uuid.New()
	restaurantSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrRestaurantNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/restaurants/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestaurantHandler_Update_Success(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	id := uuid.New()
	restaurantSvc.On("Update", mock.Anything, id, mock.AnythingOfType("service.UpdateRestaurantInput")).
		Return(&domain.Restaurant{ID: id, Name: "Harbor Grill", City: "Portland"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPut, "/api/v1/restaurants/"+id.String(), gin.H{
		"city": "Portland",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, uuid.New(), "member")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	restaurantSvc.AssertExpectations(t)
}

func TestRestaurantHandler_List_Success(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	restaurants := []domain.Restaurant{{ID: uuid.New(), Name: "Harbor Grill"}}
	restaurantSvc.On("List", mock.Anything, 0, 20).Return(restaurants, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/restaurants", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	restaurantSvc.AssertExpectations(t)
}

func TestRestaurantHandler_Delete_Success(t *testing.T) {
	h, restaurantSvc := newRestaurantHandler()

	id := uuid.New()
	restaurantSvc.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/restaurants/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	restaurantSvc.AssertExpectations(t)
}
