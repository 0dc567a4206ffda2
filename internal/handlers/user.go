package handlers

import (
	"net/http"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/dto"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/middleware"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpsertUser registers a new user anonymously. Updating an existing profile
// needs the owner's token or an Admin's.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	caller, _ := middleware.GetEmail(c)
	user, created, err := h.userService.Upsert(c.Request.Context(), caller, services.UpsertUserInput{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
		Skill:    req.Skill,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.UpsertUserResponse{Created: created, User: *user})
}

// GetUser returns the user with ?email= wrapped in a one-element array.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		apierrors.BadRequest(c, "email query parameter is required")
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, []models.User{*user})
}

// GetRole returns the stored role of a user.
func (h *UserHandler) GetRole(c *gin.Context) {
	role, err := h.userService.RoleOf(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RoleResponse{Role: role})
}

// ListWorkers returns every user with the Worker role.
func (h *UserHandler) ListWorkers(c *gin.Context) {
	role := models.RoleWorker
	h.list(c, &role)
}

// ListUsers returns all users, optionally filtered by ?role=.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var role *models.Role
	if r := models.Role(c.Query("role")); r != "" {
		if !r.Valid() {
			apierrors.BadRequest(c, "Invalid role")
			return
		}
		role = &r
	}
	h.list(c, role)
}

func (h *UserHandler) list(c *gin.Context, role *models.Role) {
	users, total, err := h.userService.List(c.Request.Context(), role, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user by id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Success: true, Message: "User deleted successfully"})
}

// AdjustCoins applies a signed coin delta to a balance.
func (h *UserHandler) AdjustCoins(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AdjustCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.AdjustCoins(c.Request.Context(), actor, req.Email, req.Coins)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetComment replaces the free-text comment on a user profile.
func (h *UserHandler) SetComment(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.SetComment(c.Request.Context(), actor, req.Email, req.Comment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Success: true})
}

// currentUser returns the stored caller loaded by middleware.RequireUser.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}
