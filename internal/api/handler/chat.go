package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

type startConversationRequest struct {
	UserAID int64 `json:"userAId" binding:"required"`
	UserBID int64 `json:"userBId" binding:"required"`
}

type sendMessageRequest struct {
	ConversationID int64  `json:"conversationId"`
	SenderID       int64  `json:"senderId" binding:"required"`
	ReceiverID     int64  `json:"receiverId" binding:"required"`
	Content        string `json:"content" binding:"required"`
}

type markSeenRequest struct {
	ConversationID int64 `json:"conversationId" binding:"required"`
	UserID         int64 `json:"userId" binding:"required"`
}

// ListThreads 用户收件箱：会话列表+最后一条+未读数
// @Summary 会话列表
// @Tags 聊天
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/chat/threads [get]
func (h *Handler) ListThreads(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "user id is required")
		return
	}
	threads, err := h.inbox.ListThreads(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"threads": threads})
}

// StartConversation 查找或创建两人会话
// @Summary 发起会话
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body startConversationRequest true "双方用户ID"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/chat/conversation [post]
func (h *Handler) StartConversation(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "both user ids are required")
		return
	}
	convID, existed, err := h.inbox.StartConversation(c.Request.Context(), req.UserAID, req.UserBID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if existed {
		response.Success(c, gin.H{"conversationId": convID, "message": "conversation already exists"})
		return
	}
	response.Created(c, gin.H{"conversationId": convID, "message": "conversation created successfully"})
}

// ListMessages 会话全量消息（升序）；带 userId 时校验参与者
// @Summary 会话消息
// @Tags 聊天
// @Param conversationId query int true "会话ID"
// @Param userId query int false "调用者ID（校验参与者）"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/chat/thread [get]
func (h *Handler) ListMessages(c *gin.Context) {
	convID, err := strconv.ParseInt(c.Query("conversationId"), 10, 64)
	if err != nil || convID <= 0 {
		response.BadRequest(c, "valid conversationId is required")
		return
	}
	var callerID int64
	if raw := c.Query("userId"); raw != "" {
		callerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "userId must be numeric")
			return
		}
	}
	msgs, err := h.chat.ListMessages(c.Request.Context(), convID, callerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"messages": msgs})
}

// SendMessage 发送消息；无 conversationId 时按收发双方定位/创建会话
// @Summary 发消息
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body sendMessageRequest true "消息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/chat/send [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "required fields missing")
		return
	}
	msg, err := h.chat.SendMessage(c.Request.Context(), req.ConversationID, req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": msg})
}

// MarkSeen 把会话内发给该用户的未读全部置已读；幂等
// @Summary 标记已读
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body markSeenRequest true "会话与用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/chat/markSeen [post]
func (h *Handler) MarkSeen(c *gin.Context) {
	var req markSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "required fields missing")
		return
	}
	if err := h.chat.MarkSeen(c.Request.Context(), req.ConversationID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// ListInbox 每个发送人最新一条消息（去重收件箱）
// @Summary 收件箱
// @Tags 聊天
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/chat/inbox [get]
func (h *Handler) ListInbox(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "user id is required")
		return
	}
	msgs, err := h.inbox.ListInbox(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"messages": msgs})
}
