package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-classifieds-api/internal/container"
	handlers "github.com/oksasatya/go-classifieds-api/internal/interface/http"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
)

// AdsModule wires the ad routes.
// Public: GET /api/ads, GET /api/ads/:id, GET /api/ads/search
// Protected: POST /api/ads, PATCH/DELETE /api/ads/:id,
//   GET /api/ads/me, PUT /api/ads/:id/image
type AdsModule struct {
	Handler *handlers.AdsHandler
}

func NewAds(h *handlers.AdsHandler) *AdsModule {
	return &AdsModule{Handler: h}
}

func (m *AdsModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/ads", m.Handler.List)
	rg.GET("/ads/search", m.Handler.Search)
	rg.GET("/ads/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByEmail()))
	{
		auth.GET("/ads/me", m.Handler.ListMine)
		auth.POST("/ads", m.Handler.Create)
		auth.PATCH("/ads/:id", m.Handler.Update)
		auth.DELETE("/ads/:id", m.Handler.Remove)
		auth.PUT("/ads/:id/image", m.Handler.ReplaceImage)
	}
}
