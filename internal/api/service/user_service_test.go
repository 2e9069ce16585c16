package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
)

func TestUserCreate_DefaultsToUserRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), dto.CreateUserDTO{
		Username: "alice",
		Email:    "alice@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", user.Role)
}

func TestUserCreate_ExplicitRoleKept(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), dto.CreateUserDTO{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})

	assert.NoError(t, err)
	assert.Equal(t, "moderator", user.Role)
}

func TestUserCreate_UnknownRoleRejected(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	_, err := svc.Create(context.Background(), dto.CreateUserDTO{
		Username: "eve",
		Email:    "eve@example.com",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestUserUpdateByUsername_CanChangeRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-1", Username: "alice", Role: "user"}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
	mockUserRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	role := "moderator"
	user, err := svc.UpdateByUsername(context.Background(), "alice", dto.UpdateUserDTO{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, "moderator", user.Role)
}

func TestUserUpdateByUsername_UnknownRoleRejected(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-1", Username: "alice", Role: "user"}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)

	role := "owner"
	_, err := svc.UpdateByUsername(context.Background(), "alice", dto.UpdateUserDTO{Role: &role})

	assert.ErrorIs(t, err, ErrInvalidRole)
	mockUserRepo.AssertNotCalled(t, "Update")
}

func TestUserUpdateProfile_RoleUntouched(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-1", Username: "alice", Role: "user", Bio: "old"}
	mockUserRepo.On("FindByID", mock.Anything, "user-1").Return(existing, nil)
	mockUserRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	bio := "new bio"
	user, err := svc.UpdateProfile(context.Background(), "user-1", dto.UpdateProfileDTO{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	// The profile DTO has no role field, so the role survives any patch.
	assert.Equal(t, "user", user.Role)
}

func TestUserDeleteByUsername_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("DeleteByUsername", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.DeleteByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
