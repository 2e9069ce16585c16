package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes wires the title collection: reads are public, writes admin
// only. PUT is intentionally not routed.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:title_id", h.Get)
	rg.POST("", authRequired, adminOnly, h.Create)
	rg.PATCH("/:title_id", authRequired, adminOnly, h.Update)
	rg.DELETE("/:title_id", authRequired, adminOnly, h.Delete)
}

// List retrieves titles with optional filters
// GET /api/v1/titles?genre=...&category=...&name=...&year=...
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := repository.TitleFilters{
		Genre:    c.Query("genre"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}
	// A non-numeric year is ignored, like any unrecognized parameter.
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filters.Year = year
	}

	titles, total, err := h.svc.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		resp = append(resp, dto.TitleFromModel(&titles[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, int(total), page, pageSize))
}

// Get retrieves a single title with its derived rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	title, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

// Create adds a title from the write representation (slugs, not objects)
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.TitleWriteDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) || errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(title))
}

// Update partially updates a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	var in dto.TitleUpdateDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, service.ErrGenreNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

// Delete removes a title; its reviews and their comments cascade away
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
