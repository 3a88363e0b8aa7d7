package service

import (
	"context"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

// Thread 收件箱中一行会话视图
type Thread struct {
	ConversationID int64          `json:"conversationId"`
	User           model.SafeUser `json:"user"` // 对端参与者
	LastMessage    *model.Message `json:"lastMessage"`
	UnreadCount    int64          `json:"unreadCount"`
}

// InboxMessage 收件箱去重视图：每个发送人最新一条
type InboxMessage struct {
	Message *model.Message `json:"message"`
	Sender  model.SafeUser `json:"sender"`
}

// InboxService 基于存储层拼装每用户收件箱视图
type InboxService interface {
	// ListThreads 某用户全部会话，按最近活跃倒序
	ListThreads(ctx context.Context, userID int64) ([]*Thread, error)
	// StartConversation 返回会话 id（已存在则复用）
	StartConversation(ctx context.Context, currentUserID, targetUserID int64) (int64, bool, error)
	ListInbox(ctx context.Context, userID int64) ([]*InboxMessage, error)
}

type inboxService struct {
	chat     ChatService
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	users    ProfileService
}

func NewInboxService(chat ChatService, convRepo repository.ConversationRepository, msgRepo repository.MessageRepository, users ProfileService) InboxService {
	return &inboxService{chat: chat, convRepo: convRepo, msgRepo: msgRepo, users: users}
}

func (s *inboxService) ListThreads(ctx context.Context, userID int64) ([]*Thread, error) {
	if userID <= 0 {
		return nil, errs.InvalidArg("user id is required")
	}
	convs, err := s.convRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "list conversations", err)
	}

	threads := make([]*Thread, 0, len(convs))
	for _, conv := range convs {
		otherID, _ := conv.Other(userID)
		other, err := s.users.SafeUser(ctx, otherID)
		if err != nil {
			return nil, err
		}
		last, err := s.msgRepo.LatestByConversation(ctx, conv.ID)
		if err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "latest message", err)
		}
		unread, err := s.chat.CountUnseen(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		threads = append(threads, &Thread{
			ConversationID: conv.ID,
			User:           other,
			LastMessage:    last,
			UnreadCount:    unread,
		})
	}
	return threads, nil
}

func (s *inboxService) StartConversation(ctx context.Context, currentUserID, targetUserID int64) (int64, bool, error) {
	convs, err := s.convRepo.ListByUser(ctx, currentUserID)
	if err != nil {
		return 0, false, errs.Wrap(errs.CodeInternal, "list conversations", err)
	}
	for _, c := range convs {
		if c.Has(targetUserID) && currentUserID != targetUserID {
			return c.ID, true, nil
		}
	}
	conv, err := s.chat.FindOrCreateConversation(ctx, currentUserID, targetUserID)
	if err != nil {
		return 0, false, err
	}
	return conv.ID, false, nil
}

func (s *inboxService) ListInbox(ctx context.Context, userID int64) ([]*InboxMessage, error) {
	if userID <= 0 {
		return nil, errs.InvalidArg("user id is required")
	}
	msgs, err := s.msgRepo.LatestPerSender(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "inbox", err)
	}
	out := make([]*InboxMessage, 0, len(msgs))
	for _, m := range msgs {
		sender, err := s.users.SafeUser(ctx, m.SenderID)
		if err != nil {
			return nil, err
		}
		out = append(out, &InboxMessage{Message: m, Sender: sender})
	}
	return out, nil
}
