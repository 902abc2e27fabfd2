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

// DirectoryModule wires the support-service directory routes.
// Public: GET /api/services, GET /api/services/:id
// Admin: POST /api/services

type DirectoryModule struct {
	Handler *handlers.ServiceHandler
	JWT     *helpers.JWTManager
}

func NewDirectoryModule(h *handlers.ServiceHandler, jwt *helpers.JWTManager) *DirectoryModule {
	return &DirectoryModule{Handler: h, JWT: jwt}
}

func (m *DirectoryModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/services", listLimiter, m.Handler.List)
	rg.GET("/services/:id", listLimiter, m.Handler.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/services", m.Handler.Create)
	}
}
