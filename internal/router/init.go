package router

import (
	"github.com/oksasatya/devconnect-api/internal/application"
	"github.com/oksasatya/devconnect-api/internal/container"
	pginfra "github.com/oksasatya/devconnect-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/devconnect-api/internal/interface/http"
	"github.com/oksasatya/devconnect-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container is
// populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	authSvc := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRabbitPub(),
		logger,
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	profileSvc := application.NewProfileService(
		profiles,
		users,
		posts,
		container.GetRedis(),
		container.GetES(),
		cfg.ESProfilesIndex,
		logger,
	)
	postSvc := application.NewPostService(posts, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), container.GetJWT()))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
