package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-classifieds-api/internal/container"
	handlers "github.com/oksasatya/go-classifieds-api/internal/interface/http"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
)

// CommentsModule wires the comment routes, all scoped to a parent ad.
// Public: GET /api/ads/:id/comments
// Protected: POST /api/ads/:id/comments,
//   PATCH/DELETE /api/ads/:id/comments/:commentId
type CommentsModule struct {
	Handler *handlers.CommentsHandler
}

func NewComments(h *handlers.CommentsHandler) *CommentsModule {
	return &CommentsModule{Handler: h}
}

func (m *CommentsModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/ads/:id/comments", m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByEmail()))
	{
		auth.POST("/ads/:id/comments", m.Handler.Add)
		auth.PATCH("/ads/:id/comments/:commentId", m.Handler.Update)
		auth.DELETE("/ads/:id/comments/:commentId", m.Handler.Remove)
	}
}
