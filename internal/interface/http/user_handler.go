package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/response"
	"github.com/lifesync/lifesync/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	p, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// UpdateMe PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role := entity.Role(c.GetString(middleware.CtxRole))
	p, err := h.Svc.UpdateProfile(c.Request.Context(), uid, uid, role, req.Name)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// UpdateUser PUT /api/users/:id. Admins may rename any user in their own
// tenant; everyone else is rejected by the service.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID := c.Param("id")
	callerID := c.GetString(middleware.CtxUserID)
	tenantID := c.GetString(middleware.CtxTenantID)
	role := entity.Role(c.GetString(middleware.CtxRole))

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	// Users from other tenants look nonexistent, same as an unknown id.
	target, err := h.Svc.GetProfile(c.Request.Context(), targetID)
	if err != nil || target.TenantID != tenantID {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}

	p, err := h.Svc.UpdateProfile(c.Request.Context(), targetID, callerID, role, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		default:
			h.Logger.WithError(err).Error("update user failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update user", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// UploadAvatar POST /api/users/me/avatar (multipart form, field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// List GET /api/users?page=&limit=&role= (manager/admin)
func (h *UserHandler) List(c *gin.Context) {
	tenantID := c.GetString(middleware.CtxTenantID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	role := entity.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		response.Error[any](c, http.StatusBadRequest, "unknown role filter", nil)
		return
	}

	users, total, err := h.Svc.ListUsers(c.Request.Context(), tenantID, repo.UserListFilter{Role: role, Page: page, Limit: limit})
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// Ranking GET /api/users/ranking?limit=
func (h *UserHandler) Ranking(c *gin.Context) {
	tenantID := c.GetString(middleware.CtxTenantID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.Svc.Ranking(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.Logger.WithError(err).Error("ranking failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load ranking", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "ranking", nil)
}

// Search GET /api/users/search?q=&size= (manager/admin)
func (h *UserHandler) Search(c *gin.Context) {
	tenantID := c.GetString(middleware.CtxTenantID)
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), tenantID, q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
