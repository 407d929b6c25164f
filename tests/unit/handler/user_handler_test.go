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

func newUserHandler() (*handler.UserHandler, *mocks.MockUserService) {
	userSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(userSvc)
	return h, userSvc
}

func TestUserHandler_Create_Success(t *testing.T) {
	h, userSvc := newUserHandler()

	user := &domain.User{ID: uuid.New(), Email: "member@example.com", Role: domain.RoleMember}
	userSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateUserInput")).
		Return(user, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/users", gin.H{
		"email":     "member@example.com",
		"password":  "supersecret",
		"full_name": "Member",
		"role":      "member",
	})
	setAuthContext(c, uuid.New(), "admin")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	userSvc.AssertExpectations(t)
}

func TestUserHandler_GetByID_SelfAccess(t *testing.T) {
	h, userSvc := newUserHandler()

	userID := uuid.New()
	userSvc.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Email: "self@example.com"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}
	setAuthContext(c, userID, "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_GetByID_OtherUserForbidden(t *testing.T) {
	h, userSvc := newUserHandler()

	targetID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+targetID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}
	setAuthContext(c, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	userSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserHandler_GetByID_AdminAccess(t *testing.T) {
	h, userSvc := newUserHandler()

	targetID := uuid.New()
	userSvc.On("GetByID", mock.Anything, targetID).
		Return(&domain.User{ID: targetID}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+targetID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}
	setAuthContext(c, uuid.New(), "admin")

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_Update_MemberCannotChangeRole(t *testing.T) {
	h, userSvc := newUserHandler()

	userID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPut, "/api/v1/users/"+userID.String(), gin.H{
		"role": "admin",
	})
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}
	setAuthContext(c, userID, "member")

	h.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	userSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_Update_SelfCanChangeName(t *testing.T) {
	h, userSvc := newUserHandler()

	userID := uuid.New()
	userSvc.On("Update", mock.Anything, userID, mock.AnythingOfType("service.UpdateUserInput")).
		Return(&domain.User{ID: userID, FullName: "Renamed"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPut, "/api/v1/users/"+userID.String(), gin.H{
		"full_name": "Renamed",
	})
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}
	setAuthContext(c, userID, "member")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	userSvc.AssertExpectations(t)
}

func TestUserHandler_Delete_Success(t *testing.T) {
	h, userSvc := newUserHandler()

	userID := uuid.New()
	userSvc.On("Delete", mock.Anything, userID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/"+userID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}
	setAuthContext(c, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	userSvc.AssertExpectations(t)
}
