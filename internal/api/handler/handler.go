package handler

import (
	"github.com/XZHHHHHH/NearUliveS/internal/config"
	"github.com/XZHHHHHH/NearUliveS/internal/service"
)

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
	authCfg      config.AuthConfig
	authService  service.AuthService
	profiles     service.ProfileService
	posts        service.PostService
	chat         service.ChatService
	inbox        service.InboxService
	notification service.NotificationService
}

func New(
	authCfg config.AuthConfig,
	authService service.AuthService,
	profiles service.ProfileService,
	posts service.PostService,
	chat service.ChatService,
	inbox service.InboxService,
	notification service.NotificationService,
) *Handler {
	return &Handler{
		authCfg:      authCfg,
		authService:  authService,
		profiles:     profiles,
		posts:        posts,
		chat:         chat,
		inbox:        inbox,
		notification: notification,
	}
}
