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

// ChallengeModule wires wellness challenge endpoints.
// Protected: GET /api/challenges/daily, POST /api/challenges/:id/complete
// Manager/admin: POST /api/challenges

type ChallengeModule struct {
	Handler *handlers.ChallengeHandler
	JWT     *helpers.JWTManager
}

func NewChallengeModule(h *handlers.ChallengeHandler, jwt *helpers.JWTManager) *ChallengeModule {
	return &ChallengeModule{Handler: h, JWT: jwt}
}

func (m *ChallengeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/challenges/daily", m.Handler.Daily)
		auth.POST("/challenges/:id/complete", m.Handler.Complete)

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
		{
			staff.POST("/challenges", m.Handler.Create)
		}
	}
}
