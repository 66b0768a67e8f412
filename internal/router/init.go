package router

import (
	"github.com/conduitapp/conduit-api/internal/application"
	"github.com/conduitapp/conduit-api/internal/container"
	pginfra "github.com/conduitapp/conduit-api/internal/infrastructure/postgres"
	handlers "github.com/conduitapp/conduit-api/internal/interface/http"
	"github.com/conduitapp/conduit-api/internal/router/modules"
)

// buildModules constructs the repository, service and handler graph from the
// container singletons and returns the route modules ready for registration.
func buildModules() []Module {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	follows := pginfra.NewFollowRepository(pool)
	articles := pginfra.NewArticleRepository(pool)
	tags := pginfra.NewTagRepository(pool)
	favorites := pginfra.NewFavoriteRepository(pool)
	comments := pginfra.NewCommentRepository(pool)

	// A nil publisher disables event delivery without a nil-interface trap.
	var events application.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = pub
	}

	userSvc := application.NewUserService(users, container.GetJWT())
	profileSvc := application.NewProfileService(users, follows, events)
	articleSvc := application.NewArticleService(articles, users, tags, favorites, follows, events)
	commentSvc := application.NewCommentService(comments, articles, follows)
	tagSvc := application.NewTagService(tags, container.GetRedis(), cfg.TagCacheTTL, logger)

	mods := []Module{
		modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()),
		modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), container.GetJWT()),
		modules.NewArticleModule(
			handlers.NewArticleHandler(articleSvc, logger),
			handlers.NewCommentHandler(commentSvc, logger),
			container.GetJWT(),
		),
		modules.NewTagModule(handlers.NewTagHandler(tagSvc, logger)),
	}
	if cfg.DebugMetricsEnabled {
		mods = append(mods, modules.NewDebugModule())
	}
	return mods
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during application startup.
func InitModules(r *Registry) {
	for _, m := range buildModules() {
		r.Add(m)
	}
}
