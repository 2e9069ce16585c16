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
	"reviewhub/internal/api/service"
)

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, titleID, reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Create(ctx context.Context, authorID string, titleID, reviewID int64, in dto.CreateCommentDTO) (*models.Comment, error) {
	args := m.Called(ctx, authorID, titleID, reviewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, titleID, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error) {
	args := m.Called(ctx, titleID, reviewID, commentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, titleID, reviewID, commentID int64) error {
	args := m.Called(ctx, titleID, reviewID, commentID)
	return args.Error(0)
}

func setupCommentRouter(svc service.CommentService, userID, role string) *gin.Engine {
	router := setupRouter()
	handler := NewCommentHandler(svc)
	rg := router.Group("/titles/:title_id/reviews/:review_id/comments", identity(userID, role))
	handler.RegisterRoutes(rg, func(c *gin.Context) { c.Next() })
	return router
}

func TestCommentUpdateHandler_OwnerAllowed(t *testing.T) {
	mockSvc := new(MockCommentService)
	router := setupCommentRouter(mockSvc, "user-1", "user")

	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1", Text: "old"}
	updated := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1", Text: "new",
		Author: models.User{Username: "alice"}}

	mockSvc.On("Get", mock.Anything, int64(7), int64(42), int64(5)).Return(comment, nil)
	mockSvc.On("Update", mock.Anything, int64(7), int64(42), int64(5), mock.AnythingOfType("dto.UpdateCommentDTO")).
		Return(updated, nil)

	w := patchJSON(router, "/titles/7/reviews/42/comments/5", map[string]string{"text": "new"})

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCommentUpdateHandler_NonOwnerForbidden(t *testing.T) {
	mockSvc := new(MockCommentService)
	router := setupCommentRouter(mockSvc, "user-2", "user")

	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1"}
	mockSvc.On("Get", mock.Anything, int64(7), int64(42), int64(5)).Return(comment, nil)

	w := patchJSON(router, "/titles/7/reviews/42/comments/5", map[string]string{"text": "hijack"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "Update",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommentUpdateHandler_GoneBetweenLookupAndWrite(t *testing.T) {
	mockSvc := new(MockCommentService)
	router := setupCommentRouter(mockSvc, "user-1", "user")

	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1"}
	mockSvc.On("Get", mock.Anything, int64(7), int64(42), int64(5)).Return(comment, nil)
	mockSvc.On("Update", mock.Anything, int64(7), int64(42), int64(5), mock.AnythingOfType("dto.UpdateCommentDTO")).
		Return(nil, service.ErrCommentNotFound)

	w := patchJSON(router, "/titles/7/reviews/42/comments/5", map[string]string{"text": "late"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentDeleteHandler_GoneBetweenLookupAndWrite(t *testing.T) {
	mockSvc := new(MockCommentService)
	router := setupCommentRouter(mockSvc, "mod-1", "moderator")

	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1"}
	mockSvc.On("Get", mock.Anything, int64(7), int64(42), int64(5)).Return(comment, nil)
	mockSvc.On("Delete", mock.Anything, int64(7), int64(42), int64(5)).Return(service.ErrReviewNotFound)

	req, _ := http.NewRequest("DELETE", "/titles/7/reviews/42/comments/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentCreateHandler_ReviewMissing(t *testing.T) {
	mockSvc := new(MockCommentService)
	router := setupCommentRouter(mockSvc, "user-1", "user")

	mockSvc.On("Create", mock.Anything, "user-1", int64(7), int64(404), mock.AnythingOfType("dto.CreateCommentDTO")).
		Return(nil, service.ErrReviewNotFound)

	w := postJSON(router, "/titles/7/reviews/404/comments", dto.CreateCommentDTO{Text: "hello"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
