package server

import (
	"time"

	httpHandler "ig-dashboard/interfaces/http"
	"ig-dashboard/interfaces/middleware"
	"ig-dashboard/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

var defaultOrigins = []string{"http://localhost:5000", "http://localhost:5173", "https://localhost:5000"}

type Options struct {
	AllowedOrigins []string
	// AuthLimiter throttles the OAuth endpoints; nil disables it.
	AuthLimiter *limiter.Limiter
}

func InitiateRouter(
	authHandler httpHandler.IAuthHandler,
	instagramHandler httpHandler.IInstagramHandler,
	healthHandler httpHandler.IHealthHandler,
	sessions usecase.ISessionUseCase,
	codec *middleware.CookieCodec,
	opts Options,
) *gin.Engine {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		},
		MaxAge: 12 * time.Hour,
	}))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.Session(sessions, codec))

	router.GET("/healthz", healthHandler.Healthz)

	oauth := []gin.HandlerFunc{}
	if opts.AuthLimiter != nil {
		oauth = append(oauth, middleware.RateLimit(opts.AuthLimiter))
	}
	router.GET("/auth/instagram/callback", append(oauth, authHandler.Callback)...)

	api := router.Group("api")
	api.GET("/auth/instagram", append(oauth, authHandler.GetAuthURL)...)
	api.GET("/auth/status", authHandler.Status)
	api.GET("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/profile", instagramHandler.Profile)
		protected.GET("/media", instagramHandler.Media)
		protected.GET("/user", instagramHandler.User)
		protected.POST("/comment", instagramHandler.Comment)
		protected.POST("/comment/reply", instagramHandler.Reply)
		protected.POST("/like", instagramHandler.Like)
		protected.DELETE("/like", instagramHandler.Unlike)
	}

	return router
}
