package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
	"github.com/oksasatya/go-classifieds-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Redis: rdb, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		writeServiceError(c, h.Logger, err)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(u.Email)
	if err != nil {
		h.Logger.WithError(err).WithField("email", u.Email).Error("generate access token failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(u.Email)
	if err != nil {
		h.Logger.WithError(err).WithField("email", u.Email).Error("generate refresh token failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	key := helpers.SessionKey(u.Email)
	pipe := h.Redis.Pipeline()
	pipe.HSet(c.Request.Context(), key, map[string]any{
		"email":      u.Email,
		"first_name": u.FirstName,
		"logged_in":  true,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(c.Request.Context(), key, 24*time.Hour)
	if _, err := pipe.Exec(c.Request.Context()); err != nil {
		h.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}

	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	response.Success(c, http.StatusOK, gin.H{"email": u.Email}, "login successful")
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": u.ID, "email": u.Email}, "registered")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if email := c.GetString(middleware.CtxUserEmailKey); email != "" {
		if err := h.Redis.Del(c.Request.Context(), helpers.SessionKey(email)).Err(); err != nil {
			h.Logger.WithError(err).WithField("email", email).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
