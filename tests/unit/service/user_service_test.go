package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"menulens/internal/domain"
	"menulens/internal/service"
	"menulens/mocks"
)

func TestUserService_Create_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    " Admin@Example.com ",
		Password: "supersecret",
		FullName: "Admin User",
		Role:     domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	userRepo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "user@example.com",
		Password: "supersecret",
		FullName: "User",
		Role:     domain.UserRole("superuser"),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_PatchesFields(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userID := uuid.New()
	existing := &domain.User{
		ID:       userID,
		Email:    "user@example.com",
		FullName: "Old Name",
		Role:     domain.RoleMember,
		IsActive: true,
	}

	userRepo.On("GetByID", mock.Anything, userID).Return(existing, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	newName := "New Name"
	inactive := false
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{
		FullName: &newName,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.False(t, user.IsActive)
	assert.Equal(t, domain.RoleMember, user.Role)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Role: domain.RoleMember}, nil)

	badRole := domain.UserRole("root")
	_, err := svc.Update(context.Background(), userID, service.UpdateUserInput{Role: &badRole})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Update_NotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), userID, service.UpdateUserInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
