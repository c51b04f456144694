package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/response"
	"github.com/lifesync/lifesync/pkg/validation"
)

type ChallengeHandler struct {
	Svc    *application.ChallengeService
	Logger *logrus.Logger
}

func NewChallengeHandler(svc *application.ChallengeService, logger *logrus.Logger) *ChallengeHandler {
	return &ChallengeHandler{Svc: svc, Logger: logger}
}

type createChallengeRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"max=500"`
	Category    string `json:"category" binding:"required,oneof=PHYSICAL MENTAL NUTRITION SOCIAL"`
	XPReward    int    `json:"xp_reward" binding:"required,gte=1,lte=500"`
}

// Create POST /api/challenges (manager/admin)
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tenantID := c.GetString(middleware.CtxTenantID)

	ch, err := h.Svc.Create(c.Request.Context(), tenantID, application.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.ChallengeCategory(req.Category),
		XPReward:    req.XPReward,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create challenge failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create challenge", nil)
		return
	}
	response.Success(c, http.StatusCreated, ch, "challenge created", nil)
}

// Daily GET /api/challenges/daily
func (h *ChallengeHandler) Daily(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	tenantID := c.GetString(middleware.CtxTenantID)

	challenges, err := h.Svc.Daily(c.Request.Context(), uid, tenantID)
	if err != nil {
		h.Logger.WithError(err).Error("daily challenges failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load challenges", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"challenges": challenges}, "daily challenges", nil)
}

// Complete POST /api/challenges/:id/complete
func (h *ChallengeHandler) Complete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	challengeID := c.Param("id")

	res, err := h.Svc.Complete(c.Request.Context(), uid, challengeID)
	switch {
	case errors.Is(err, application.ErrChallengeNotFound):
		response.Error[any](c, http.StatusNotFound, "challenge not found", nil)
		return
	case errors.Is(err, application.ErrAlreadyCompleted):
		response.Error[any](c, http.StatusBadRequest, "challenge already completed today", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("complete challenge failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to complete challenge", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "challenge completed", nil)
}
