package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, filters repository.UserFilters, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Create(ctx context.Context, in dto.CreateUserDTO) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateByUsername(ctx context.Context, username string, in dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(ctx, username, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, in dto.UpdateProfileDTO) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupUserRouter(svc service.UserService, userID, role string) *gin.Engine {
	router := setupRouter()
	handler := NewUserHandler(svc)
	rg := router.Group("/users", identity(userID, role))
	passthrough := func(c *gin.Context) { c.Next() }
	handler.RegisterRoutes(rg, passthrough, passthrough)
	return router
}

func TestUserProfileHandler_AuthenticatedAllowed(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, "user-1", "user")

	user := &models.User{ID: "user-1", Username: "alice", Role: "user"}
	mockSvc.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	req, _ := http.NewRequest("GET", "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestUserProfileHandler_AnonymousForbidden(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, "", "anonymous")

	req, _ := http.NewRequest("GET", "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The profile policy rejects anonymous callers even if the route guard
	// let them through.
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserProfileUpdateHandler_AnonymousForbidden(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, "", "anonymous")

	w := patchJSON(router, "/users/me", map[string]string{"bio": "new"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserCreateHandler_InvalidRoleMapsToBadRequest(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, "admin-1", "admin")

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateUserDTO")).
		Return(nil, service.ErrInvalidRole)

	w := postJSON(router, "/users", dto.CreateUserDTO{
		Username: "bob",
		Email:    "bob@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"role"`)
}
