package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/XZHHHHHH/NearUliveS/docs"
	"github.com/XZHHHHHH/NearUliveS/internal/api/handler"
	"github.com/XZHHHHHH/NearUliveS/internal/api/middleware"
	"github.com/XZHHHHHH/NearUliveS/internal/config"
	"github.com/XZHHHHHH/NearUliveS/internal/service"
)

// RouterOptions 路由装配参数
type RouterOptions struct {
	Config      *config.Config
	Handler     *handler.Handler
	AuthService service.AuthService
	// SentryEnabled 已 sentry.Init 时挂恢复中间件
	SentryEnabled bool
	TraceEnabled  bool
}

// NewRouter 装配全部中间件与路由
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Config.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.Logger(), gin.Recovery())
	if opts.SentryEnabled {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.TraceEnabled {
		r.Use(otelgin.Middleware("nearulives"))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(opts.Config.Server.RateLimitQPS, opts.Config.Server.RateBurst))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := opts.Handler
	cookie := opts.Config.Auth.CookieName
	requireAuth := middleware.Auth(opts.AuthService, cookie)
	optionalAuth := middleware.OptionalAuth(opts.AuthService, cookie)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", optionalAuth, h.Me)
		}

		chat := api.Group("/chat", requireAuth)
		{
			chat.GET("/threads", h.ListThreads)
			chat.POST("/conversation", h.StartConversation)
			chat.GET("/thread", h.ListMessages)
			chat.POST("/send", h.SendMessage)
			chat.POST("/markSeen", h.MarkSeen)
			chat.GET("/inbox", h.ListInbox)
		}

		users := api.Group("/users")
		{
			users.GET("/profile", h.GetProfile)
			users.PUT("/profile", requireAuth, h.UpdateProfile)
			users.GET("/search", h.SearchUsers)
			users.POST("/migrate-profiles", h.MigrateProfiles)
		}

		post := api.Group("/post")
		{
			post.POST("/create", requireAuth, h.CreatePost)
			post.POST("/like", requireAuth, h.ToggleLike)
			post.POST("/delete", requireAuth, h.DeletePost)
			post.GET("/:id/like-count", h.LikeCount)
		}
		api.GET("/posts", optionalAuth, h.ListPosts)
		api.GET("/posts/search", optionalAuth, h.SearchPosts)

		comments := api.Group("/comments")
		{
			comments.GET("/:postId", h.ListComments)
			comments.POST("/:postId", optionalAuth, h.AddComment)
		}

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", h.ListNotifications)
			notifications.PATCH("", h.MarkNotificationsRead)
			notifications.GET("/counts", h.NotificationCounts)
		}

		api.POST("/upload", requireAuth, h.UploadImage)
	}

	return r
}
