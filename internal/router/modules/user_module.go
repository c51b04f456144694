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

// UserModule wires profile and directory endpoints.
// Protected: GET/PUT /api/users/me, PUT /api/users/:id, POST /api/users/me/avatar, GET /api/users/ranking
// Manager/admin: GET /api/users, GET /api/users/search

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PUT("/users/me", m.Handler.UpdateMe)
		auth.PUT("/users/:id", m.Handler.UpdateUser)
		auth.POST("/users/me/avatar", m.Handler.UploadAvatar)
		auth.GET("/users/ranking", m.Handler.Ranking)

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
		{
			staff.GET("/users", m.Handler.List)
			staff.GET("/users/search", m.Handler.Search)
		}
	}
}
