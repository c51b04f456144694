package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifesync/lifesync/internal/container"
	"github.com/lifesync/lifesync/internal/domain/entity"
	handlers "github.com/lifesync/lifesync/internal/interface/http"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/helpers"
)

// AnalyticsModule wires the manager-facing aggregate endpoints.
// Manager/admin: GET /api/analytics/mood-summary

type AnalyticsModule struct {
	Handler *handlers.AnalyticsHandler
	JWT     *helpers.JWTManager
}

func NewAnalyticsModule(h *handlers.AnalyticsHandler, jwt *helpers.JWTManager) *AnalyticsModule {
	return &AnalyticsModule{Handler: h, JWT: jwt}
}

func (m *AnalyticsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/analytics/mood-summary", m.Handler.MoodSummary)
	}
}
