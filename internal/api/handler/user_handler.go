package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes wires user management (admin only, keyed by username) plus
// the self-profile sub-route. "me" is registered as a static segment so it
// never collides with a username lookup.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	rg.GET("/me", authRequired, h.GetProfile)
	rg.PATCH("/me", authRequired, h.UpdateProfile)

	rg.GET("", authRequired, adminOnly, h.List)
	rg.POST("", authRequired, adminOnly, h.Create)
	rg.GET("/:username", authRequired, adminOnly, h.Get)
	rg.PATCH("/:username", authRequired, adminOnly, h.Update)
	rg.DELETE("/:username", authRequired, adminOnly, h.Delete)
}

// List retrieves users with optional filters
// GET /api/v1/users?role=...&username=...&email=...
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := repository.UserFilters{
		Role:     c.Query("role"),
		Username: c.Query("username"),
		Email:    c.Query("email"),
	}

	users, total, err := h.svc.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.UserFromModel(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, int(total), page, pageSize))
}

// Create adds a user; admins may set the role directly
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var in dto.CreateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "role"})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.UserFromModel(user))
}

// Get retrieves a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Update partially updates a user; may change the role
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var in dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateByUsername(c.Request.Context(), c.Param("username"), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "role"})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Delete removes a user
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile returns the caller's own record
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	if !permissions.ProfileAllowed(middleware.CurrentRole(c), permissions.ActionRetrieve) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot access this profile"})
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// UpdateProfile patches the caller's own record; the role field is not part
// of the profile DTO, so it cannot change here
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	if !permissions.ProfileAllowed(middleware.CurrentRole(c), permissions.ActionPartialUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot modify this profile"})
		return
	}

	var in dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}
