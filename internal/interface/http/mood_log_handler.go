package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/response"
	"github.com/lifesync/lifesync/pkg/validation"
)

type MoodLogHandler struct {
	Svc    *application.MoodLogService
	Logger *logrus.Logger
}

func NewMoodLogHandler(svc *application.MoodLogService, logger *logrus.Logger) *MoodLogHandler {
	return &MoodLogHandler{Svc: svc, Logger: logger}
}

type createMoodLogRequest struct {
	Mood int      `json:"mood" binding:"required,mood"`
	Tags []string `json:"tags"`
	Note string   `json:"note" binding:"max=500"`
}

// Create POST /api/mood-logs
func (h *MoodLogHandler) Create(c *gin.Context) {
	var req createMoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserID)

	view, err := h.Svc.Log(c.Request.Context(), uid, req.Mood, req.Tags, req.Note)
	if err != nil {
		h.Logger.WithError(err).Error("create mood log failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to record mood", nil)
		return
	}
	response.Success(c, http.StatusCreated, view, "mood logged", nil)
}

// History GET /api/mood-logs/history?limit=&cursor=
func (h *MoodLogHandler) History(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "7"))

	page, err := h.Svc.History(c.Request.Context(), uid, limit, c.Query("cursor"))
	if err != nil {
		h.Logger.WithError(err).Error("mood history failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load history", nil)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "mood history", map[string]any{"next_cursor": page.NextCursor})
}
