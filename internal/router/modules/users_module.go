package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-classifieds-api/internal/container"
	handlers "github.com/oksasatya/go-classifieds-api/internal/interface/http"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
)

// UsersModule wires the profile routes, all protected.
type UsersModule struct {
	Handler *handlers.UsersHandler
}

func NewUsers(h *handlers.UsersHandler) *UsersModule {
	return &UsersModule{Handler: h}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByEmail()))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PATCH("/users/me", m.Handler.UpdateMe)
		auth.POST("/users/set_password", m.Handler.SetPassword)
		auth.PUT("/users/me/image", m.Handler.UpdateImage)
		auth.DELETE("/users/me", m.Handler.DeleteMe)
	}
}
