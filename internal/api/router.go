package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"linkrank/config"
	"linkrank/internal/api/handler"
	"linkrank/internal/api/middleware"
	"linkrank/internal/service"
	"linkrank/pkg/metrics"
)

// NewRouter 装配路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler, users service.UserService) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(otelgin.Middleware(cfg.App.Name))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Auth(users))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		api.POST("/submit", h.Submit)
		api.POST("/vote", h.Vote)

		api.GET("/top", h.Top)
		api.GET("/newest", h.Newest)
		api.GET("/saved", h.Saved)
		api.GET("/posted", h.Posted)
		api.GET("/posts/:id", h.GetPost)
	}
	return r
}
