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

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes wires comments nested under their review.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:comment_id", h.Get)
	rg.POST("", authRequired, h.Create)
	rg.PATCH("/:comment_id", authRequired, h.Update)
	rg.DELETE("/:comment_id", authRequired, h.Delete)
}

func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

func (h *CommentHandler) parents(c *gin.Context) (tid, rid int64, ok bool) {
	tid, ok = titleID(c)
	if !ok {
		return 0, 0, false
	}
	rid, ok = reviewID(c)
	if !ok {
		return 0, 0, false
	}
	return tid, rid, true
}

// List retrieves all comments on a review
// GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	tid, rid, ok := h.parents(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.svc.ListByReview(c.Request.Context(), tid, rid, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.CommentFromModel(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, int(total), page, pageSize))
}

// Get retrieves a single comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	tid, rid, ok := h.parents(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), tid, rid, cid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) || errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(comment))
}

// Create posts a comment on a review
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	tid, rid, ok := h.parents(c)
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), tid, rid, in)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.CommentFromModel(comment))
}

// Update partially updates a comment; author, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	tid, rid, ok := h.parents(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), tid, rid, cid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) || errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	owner := comment.AuthorID == middleware.CurrentUserID(c)
	if !permissions.ContentAllowed(middleware.CurrentRole(c), permissions.ActionPartialUpdate, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot modify this comment"})
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), tid, rid, cid, in)
	if err != nil {
		// The comment can vanish between the ownership lookup and the write.
		if errors.Is(err, service.ErrReviewNotFound) || errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(updated))
}

// Delete removes a comment; author, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	tid, rid, ok := h.parents(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), tid, rid, cid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) || errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	owner := comment.AuthorID == middleware.CurrentUserID(c)
	if !permissions.ContentAllowed(middleware.CurrentRole(c), permissions.ActionDestroy, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot delete this comment"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tid, rid, cid); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) || errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
