package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifesync/lifesync/internal/container"
	handlers "github.com/lifesync/lifesync/internal/interface/http"
	"github.com/lifesync/lifesync/internal/interface/middleware"
	"github.com/lifesync/lifesync/pkg/helpers"
)

// MoodLogModule wires daily check-in endpoints.
// Protected: POST /api/mood-logs, GET /api/mood-logs/history

type MoodLogModule struct {
	Handler *handlers.MoodLogHandler
	JWT     *helpers.JWTManager
}

func NewMoodLogModule(h *handlers.MoodLogHandler, jwt *helpers.JWTManager) *MoodLogModule {
	return &MoodLogModule{Handler: h, JWT: jwt}
}

func (m *MoodLogModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/mood-logs", m.Handler.Create)
		auth.GET("/mood-logs/history", m.Handler.History)
	}
}
