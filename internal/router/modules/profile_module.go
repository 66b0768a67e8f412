package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/conduitapp/conduit-api/internal/interface/http"
	"github.com/conduitapp/conduit-api/internal/interface/middleware"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

// ProfileModule wires profile routes.
// Public (optional auth): GET /api/profiles/:username
// Protected: POST/DELETE /api/profiles/:username/follow
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	profiles := rg.Group("/profiles")
	profiles.GET("/:username", middleware.OptionalAuth(m.JWT), m.Handler.Get)

	follow := profiles.Group("/:username/follow")
	follow.Use(middleware.Auth(m.JWT))
	{
		follow.POST("", m.Handler.Follow)
		follow.DELETE("", m.Handler.Unfollow)
	}
}
