package handler

import (
	"context"
	"encoding/json"
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

// MockTitleService mocks the TitleService interface
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, in dto.TitleWriteDTO) (*models.Title, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id int64, in dto.TitleUpdateDTO) (*models.Title, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func passThrough(c *gin.Context) { c.Next() }

func setupTitleRouter(svc service.TitleService) *gin.Engine {
	router := setupRouter()
	handler := NewTitleHandler(svc)
	handler.RegisterRoutes(router.Group("/titles"), passThrough, passThrough)
	return router
}

func TestTitleListHandler_FilterParsing(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	expected := repository.TitleFilters{Genre: "drama", Category: "movies", Name: "fargo", Year: 1996}
	mockSvc.On("List", mock.Anything, expected, 1, 20).Return([]models.Title{}, int64(0), nil)

	req, _ := http.NewRequest("GET", "/titles?genre=drama&category=movies&name=fargo&year=1996", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTitleListHandler_NonNumericYearIgnored(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	expected := repository.TitleFilters{Name: "fargo"}
	mockSvc.On("List", mock.Anything, expected, 1, 20).Return([]models.Title{}, int64(0), nil)

	req, _ := http.NewRequest("GET", "/titles?name=fargo&year=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTitleListHandler_PageSizeCapped(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	mockSvc.On("List", mock.Anything, repository.TitleFilters{}, 2, 100).
		Return([]models.Title{}, int64(0), nil)

	req, _ := http.NewRequest("GET", "/titles?page=2&page_size=500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTitleGetHandler_IncludesRating(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	rating := 7.5
	title := &models.Title{
		ID:     11,
		Name:   "Fargo",
		Year:   1996,
		Rating: &rating,
		Genres: []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}},
	}
	mockSvc.On("GetByID", mock.Anything, int64(11)).Return(title, nil)

	req, _ := http.NewRequest("GET", "/titles/11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TitleResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response.Rating)
	assert.Equal(t, 7.5, *response.Rating)
	assert.Len(t, response.Genre, 1)
}

func TestTitleGetHandler_NotFound(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	mockSvc.On("GetByID", mock.Anything, int64(404)).Return(nil, service.ErrTitleNotFound)

	req, _ := http.NewRequest("GET", "/titles/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTitleCreateHandler_UnknownCategoryIsBadRequest(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("dto.TitleWriteDTO")).
		Return(nil, service.ErrCategoryNotFound)

	w := postJSON(router, "/titles", dto.TitleWriteDTO{Name: "X", Year: 2000, Category: "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTitleCreateHandler_FutureYearRejected(t *testing.T) {
	mockSvc := new(MockTitleService)
	router := setupTitleRouter(mockSvc)

	w := postJSON(router, "/titles", map[string]any{
		"name":     "X",
		"year":     3000,
		"category": "movies",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
