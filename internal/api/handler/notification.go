package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/internal/api/middleware"
	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

type markReadRequest struct {
	NotificationIDs []int64 `json:"notificationIds" binding:"required"`
}

// ListNotifications 当前用户通知，倒序；type 过滤 all/like/comment/follow
// @Summary 通知列表
// @Tags 通知
// @Param type query string false "类型过滤"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	items, err := h.notification.List(c.Request.Context(), middleware.UserID(c), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"notifications": items})
}

// MarkNotificationsRead 把自己的指定通知置已读
// @Summary 标记通知已读
// @Tags 通知
// @Accept json
// @Produce json
// @Param request body markReadRequest true "通知ID列表"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/notifications [patch]
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.notification.MarkRead(c.Request.Context(), middleware.UserID(c), req.NotificationIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// NotificationCounts 未读通知统计
// @Summary 未读统计
// @Tags 通知
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/notifications/counts [get]
func (h *Handler) NotificationCounts(c *gin.Context) {
	counts, err := h.notification.Counts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}
