package router

import (
	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/container"
	pginfra "github.com/oksasatya/go-classifieds-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-classifieds-api/internal/interface/http"
	"github.com/oksasatya/go-classifieds-api/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	images := container.GetImages()

	userRepo := pginfra.NewUserRepository(pool)
	adRepo := pginfra.NewAdRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	usersSvc := application.NewUsersService(userRepo, adRepo, images, logger)
	authSvc := application.NewAuthService(usersSvc, logger, container.GetRabbitPub())
	adsSvc := application.NewAdsService(adRepo, userRepo, images, logger, container.GetES(), cfg.ESAdsIndex)
	commentsSvc := application.NewCommentsService(commentRepo, adRepo, userRepo, logger)

	r.Add(modules.NewAuth(handlers.NewAuthHandler(authSvc, container.GetJWT(), container.GetRedis(), logger, cfg.CookieDomain, cfg.CookieSecure)))
	r.Add(modules.NewUsers(handlers.NewUsersHandler(usersSvc, logger)))
	r.Add(modules.NewAds(handlers.NewAdsHandler(adsSvc, logger)))
	r.Add(modules.NewComments(handlers.NewCommentsHandler(commentsSvc, logger)))

	// Attachment bytes are served outside /api, matching the stored
	// "/images/<filename>" reference form.
	imagesHandler := handlers.NewImagesHandler(images, logger)
	r.Engine.GET("/images/:image", imagesHandler.Get)
}
