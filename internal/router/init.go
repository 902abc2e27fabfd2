package router

import (
	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/container"
	pginfra "github.com/openpaths/reentry-api/internal/infrastructure/postgres"
	handlers "github.com/openpaths/reentry-api/internal/interface/http"
	"github.com/openpaths/reentry-api/internal/router/modules"
)

// InitModules wires every feature module from the startup singletons and
// registers them with the router registry. Called once from main.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	profileRepo := pginfra.NewProfileRepository(pool)
	serviceRepo := pginfra.NewServiceRepository(pool)
	auditRepo := pginfra.NewAuditLogRepository(pool)

	recorder := application.NewAuditRecorder(auditRepo, logger)

	authSvc := application.NewAuthService(profileRepo, container.GetJWT(), container.GetRedis(), logger, container.GetRabbitPub())
	profileSvc := application.NewProfileService(profileRepo, container.GetGCS(), cfg.GCSBucket, logger, container.GetES(), cfg.ESProfilesIndex)
	directorySvc := application.NewDirectoryService(serviceRepo)

	authHandler := handlers.NewAuthHandler(authSvc, recorder, logger, cfg.CookieDomain, cfg.CookieSecure)
	profileHandler := handlers.NewProfileHandler(profileSvc, recorder, logger)
	serviceHandler := handlers.NewServiceHandler(directorySvc, recorder, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT()))
	r.Add(modules.NewDirectoryModule(serviceHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
