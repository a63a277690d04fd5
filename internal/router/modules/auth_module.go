package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-classifieds-api/internal/container"
	handlers "github.com/oksasatya/go-classifieds-api/internal/interface/http"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
)

// AuthModule wires login/register/logout.
// Public: POST /api/login, POST /api/register
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuth(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIP())

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/register", registerLimiter, m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT()))
	auth.POST("/logout", m.Handler.Logout)
}
