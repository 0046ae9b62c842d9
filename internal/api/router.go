package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"bilemo-backend/config"
	"bilemo-backend/internal/auth"
	"bilemo-backend/internal/cache"
	"bilemo-backend/internal/mw"
	"bilemo-backend/internal/service"
	"bilemo-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store) *gin.Engine {
	r := gin.Default()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tagCache := cache.New(time.Duration(cfg.Server.CacheTTLSeconds) * time.Second)

	handler := NewHandler(
		service.NewBrandService(s),
		service.NewDeviceService(s),
		service.NewUserService(s, hasher),
		tagCache,
		tokens,
		cfg.Server.Debug,
	)

	rateLimiter := mw.RateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst)
	authenticated := mw.Auth(tokens, s)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/", handler.Welcome)
		api.POST("/login", handler.Login)

		protected := api.Group("")
		protected.Use(authenticated)
		{
			protected.GET("/brands", handler.GetBrands)
			protected.GET("/brands/:id", handler.GetBrand)
			protected.GET("/brands/:id/devices", handler.GetBrandDevices)
			protected.DELETE("/brands/:id", handler.DeleteBrand)

			protected.GET("/devices", handler.GetDevices)
			protected.GET("/devices/:id", handler.GetDevice)

			protected.GET("/users", handler.GetUsers)
			protected.GET("/users/:id", handler.GetUser)
			protected.POST("/users", handler.CreateUser)
			protected.PUT("/users/:id", handler.UpdateUser)
			protected.DELETE("/users/:id", handler.DeleteUser)
		}
	}

	return r
}
