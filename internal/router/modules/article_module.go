package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduitapp/conduit-api/internal/container"
	handlers "github.com/conduitapp/conduit-api/internal/interface/http"
	"github.com/conduitapp/conduit-api/internal/interface/middleware"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

// ArticleModule wires article and comment routes.
// Public (optional auth): GET /api/articles, GET /api/articles/:slug,
// GET /api/articles/:slug/comments
// Protected: feed, create/update/delete, favorite, comment create/delete
type ArticleModule struct {
	Articles *handlers.ArticleHandler
	Comments *handlers.CommentHandler
	JWT      *helpers.JWTManager
}

func NewArticleModule(a *handlers.ArticleHandler, c *handlers.CommentHandler, jwt *helpers.JWTManager) *ArticleModule {
	return &ArticleModule{Articles: a, Comments: c, JWT: jwt}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil)

	articles := rg.Group("/articles")
	articles.GET("", middleware.OptionalAuth(m.JWT), m.Articles.List)
	articles.GET("/feed", middleware.Auth(m.JWT), m.Articles.Feed)
	articles.GET("/:slug", middleware.OptionalAuth(m.JWT), m.Articles.Get)
	articles.GET("/:slug/comments", middleware.OptionalAuth(m.JWT), m.Comments.List)

	auth := rg.Group("/articles")
	auth.Use(middleware.Auth(m.JWT), writeLimiter)
	{
		auth.POST("", m.Articles.Create)
		auth.PUT("/:slug", m.Articles.Update)
		auth.DELETE("/:slug", m.Articles.Delete)

		auth.POST("/:slug/favorite", m.Articles.Favorite)
		auth.DELETE("/:slug/favorite", m.Articles.Unfavorite)

		auth.POST("/:slug/comments", m.Comments.Create)
		auth.DELETE("/:slug/comments/:id", m.Comments.Delete)
	}
}
