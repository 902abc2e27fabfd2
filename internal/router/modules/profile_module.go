package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openpaths/reentry-api/internal/container"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	handlers "github.com/openpaths/reentry-api/internal/interface/http"
	"github.com/openpaths/reentry-api/internal/interface/middleware"
	"github.com/openpaths/reentry-api/pkg/helpers"
)

// ProfileModule wires the profile routes.
// Protected: GET /api/profile, PUT /api/profile, POST /api/profile/avatar
// Admin/officer: GET /api/profiles/search

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleOfficer))
		staff.GET("/profiles/search", m.Handler.Search)
	}
}
