package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/middleware"
)

type RouterDeps struct {
	Auth           *AuthHandler
	Blogs          *BlogHandler
	Files          *FileHandler
	JWTSecret      []byte
	Users          middleware.UserResolver
	Revocations    middleware.RevocationChecker
	AuthRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authLimit := middleware.RateLimit(deps.AuthRateWindow)
	api.POST("/auth/register", authLimit, deps.Auth.Register)
	api.POST("/auth/login", authLimit, deps.Auth.Login)

	api.GET("/blogs/all", deps.Blogs.List)
	api.GET("/blogs/:id", deps.Blogs.Get)
	api.GET("/files/:key", deps.Files.Get)

	gate := api.Group("")
	gate.Use(middleware.JWTAuth(deps.JWTSecret, deps.Users, deps.Revocations))
	gate.POST("/auth/logout", deps.Auth.Logout)
	gate.GET("/auth/me", deps.Auth.Me)
	gate.POST("/blogs", deps.Blogs.Create)
	gate.PUT("/blogs/:id", deps.Blogs.Update)
	gate.DELETE("/blogs/:id", deps.Blogs.Delete)
}
