package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openpaths/reentry-api/internal/container"
	handlers "github.com/openpaths/reentry-api/internal/interface/http"
	"github.com/openpaths/reentry-api/internal/interface/middleware"
	"github.com/openpaths/reentry-api/pkg/helpers"
)

// AuthModule wires sign-up/sign-in/refresh/sign-out routes.
// Public: POST /api/auth/signup, /api/auth/signin, /api/auth/refresh
// Protected: POST /api/auth/signout

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	signinLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.SignUp)
	rg.POST("/auth/signin", signinLimiter, m.Handler.SignIn)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/auth/signout", m.Handler.SignOut)
	}
}
