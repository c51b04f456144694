package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/response"
)

type AnalyticsHandler struct {
	Svc    *application.AnalyticsService
	Logger *logrus.Logger
}

func NewAnalyticsHandler(svc *application.AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc, Logger: logger}
}

// parseDate accepts YYYY-MM-DD or RFC3339; empty input yields a zero time.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func dateQuery(c *gin.Context, names ...string) string {
	for _, n := range names {
		if v := c.Query(n); v != "" {
			return v
		}
	}
	return ""
}

// MoodSummary GET /api/analytics/mood-summary?start_date=&end_date= (manager/admin)
func (h *AnalyticsHandler) MoodSummary(c *gin.Context) {
	tenantID := c.GetString(middleware.CtxTenantID)

	from, ok := parseDate(dateQuery(c, "start_date", "startDate"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid start_date", nil)
		return
	}
	to, ok := parseDate(dateQuery(c, "end_date", "endDate"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid end_date", nil)
		return
	}

	summary, err := h.Svc.MoodSummary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.Logger.WithError(err).Error("mood summary failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to build summary", nil)
		return
	}
	response.Success(c, http.StatusOK, summary, "mood summary", nil)
}
