package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/api"
	"github.com/XZHHHHHH/NearUliveS/internal/api/handler"
	"github.com/XZHHHHHH/NearUliveS/internal/cache"
	"github.com/XZHHHHHH/NearUliveS/internal/config"
	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/internal/service"
	"github.com/XZHHHHHH/NearUliveS/pkg/logger"
	"github.com/XZHHHHHH/NearUliveS/pkg/tracing"
)

// @title NearUliveS API
// @version 1.0
// @description 社交应用后端：认证、帖子、点赞评论、私聊、通知
func main() {
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	sentryEnabled := false
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(ctx, "nearulives", cfg.Trace.Endpoint)
		if err != nil {
			logger.Fatal("tracing init failed", zap.Error(err))
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	db := mustOpenDB(cfg.Database)
	if err := db.AutoMigrate(
		&model.User{}, &model.UserProfile{},
		&model.Post{}, &model.Like{}, &model.Comment{},
		&model.Notification{},
		&model.Conversation{}, &model.Message{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, unread cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	unread := cache.NewUnreadCache(redisClient, cfg.Redis.UnreadTTL)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	notifier := service.NewNotifier(notificationRepo, cfg.Chat.NotifyQueueSize)
	stopNotifier := notifier.Start(cfg.Chat.NotifyWorkers)

	authService := service.NewAuthService(db, userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileService := service.NewProfileService(userRepo, profileRepo)
	postService := service.NewPostService(postRepo, likeRepo, commentRepo, userRepo, notifier)
	chatService := service.NewChatService(convRepo, msgRepo, unread)
	inboxService := service.NewInboxService(chatService, convRepo, msgRepo, profileService)
	notificationService := service.NewNotificationService(notificationRepo)

	h := handler.New(cfg.Auth, authService, profileService, postService, chatService, inboxService, notificationService)
	router := api.NewRouter(api.RouterOptions{
		Config:        cfg,
		Handler:       h,
		AuthService:   authService,
		SentryEnabled: sentryEnabled,
		TraceEnabled:  cfg.Trace.Enabled,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	_ = stopNotifier(shutdownCtx)
}

func mustOpenDB(cfg config.DatabaseConfig) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.Driver), zap.Error(err))
	}
	return db
}
