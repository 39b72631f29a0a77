package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devconnect-api/internal/container"
	handlers "github.com/oksasatya/devconnect-api/internal/interface/http"
	"github.com/oksasatya/devconnect-api/internal/interface/middleware"
	"github.com/oksasatya/devconnect-api/pkg/helpers"
)

// AuthModule wires registration and session routes.
// Public: POST /api/users, POST /api/auth
// Protected: GET /api/auth, POST /api/users/avatar

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/auth", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth", m.Handler.Me)
		auth.POST("/users/avatar", m.Handler.UploadAvatar)
	}
}
