package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduitapp/conduit-api/internal/container"
	handlers "github.com/conduitapp/conduit-api/internal/interface/http"
	"github.com/conduitapp/conduit-api/internal/interface/middleware"
)

// TagModule wires GET /api/tags.
type TagModule struct {
	Handler *handlers.TagHandler
}

func NewTagModule(h *handlers.TagHandler) *TagModule {
	return &TagModule{Handler: h}
}

func (m *TagModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/tags", rl, m.Handler.List)
}
