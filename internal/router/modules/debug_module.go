package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openpaths/reentry-api/internal/container"
	"github.com/openpaths/reentry-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar, includes audit_write_failures),
	// rate-limited per IP with a bypass for private addresses.
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
