package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes wires reviews nested under their title. PUT is not routed;
// only GET/POST/PATCH/DELETE are allowed.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:review_id", h.Get)
	rg.POST("", authRequired, h.Create)
	rg.PATCH("/:review_id", authRequired, h.Update)
	rg.DELETE("/:review_id", authRequired, h.Delete)
}

func titleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, false
	}
	return id, true
}

func reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, false
	}
	return id, true
}

// List retrieves all reviews for a title
// GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	reviews, total, err := h.svc.ListByTitle(c.Request.Context(), tid, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.ReviewFromModel(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, int(total), page, pageSize))
}

// Get retrieves a single review
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	rid, ok := reviewID(c)
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), tid, rid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(review))
}

// Create posts a review; one per author per title
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), tid, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReviewExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ReviewFromModel(review))
}

// Update partially updates a review; author, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	rid, ok := reviewID(c)
	if !ok {
		return
	}

	// Parent lookup first: a nonexistent review is 404 before any
	// permission evaluation.
	review, err := h.svc.Get(c.Request.Context(), tid, rid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	owner := review.AuthorID == middleware.CurrentUserID(c)
	if !permissions.ContentAllowed(middleware.CurrentRole(c), permissions.ActionPartialUpdate, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot modify this review"})
		return
	}

	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), tid, rid, in)
	if err != nil {
		// The review can vanish between the ownership lookup and the write.
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(updated))
}

// Delete removes a review; author, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	rid, ok := reviewID(c)
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), tid, rid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	owner := review.AuthorID == middleware.CurrentUserID(c)
	if !permissions.ContentAllowed(middleware.CurrentRole(c), permissions.ActionDestroy, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot delete this review"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tid, rid); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
