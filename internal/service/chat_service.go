package service

import (
	"context"
	"strings"

	"github.com/XZHHHHHH/NearUliveS/internal/cache"
	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

// ChatService 会话/消息存储层的业务封装
type ChatService interface {
	// FindOrCreateConversation 无序对查找或创建；userA==userB 报 INVALID_ARGUMENT
	FindOrCreateConversation(ctx context.Context, userA, userB int64) (*model.Conversation, error)
	// SendMessage conversationID<=0 时先按 (sender, receiver) 定位/创建会话
	SendMessage(ctx context.Context, conversationID, senderID, receiverID int64, content string) (*model.Message, error)
	// ListMessages callerID>0 时校验其为会话参与者，否则 FORBIDDEN
	ListMessages(ctx context.Context, conversationID, callerID int64) ([]*model.Message, error)
	MarkSeen(ctx context.Context, conversationID, recipientID int64) error
	CountUnseen(ctx context.Context, conversationID, recipientID int64) (int64, error)
}

type chatService struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	unread   *cache.UnreadCache
}

func NewChatService(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository, unread *cache.UnreadCache) ChatService {
	return &chatService{convRepo: convRepo, msgRepo: msgRepo, unread: unread}
}

func (s *chatService) FindOrCreateConversation(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	if userA <= 0 || userB <= 0 {
		return nil, errs.InvalidArg("both user ids are required")
	}
	if userA == userB {
		return nil, errs.InvalidArg("cannot start conversation with yourself")
	}
	conv, err := s.convRepo.FindOrCreate(ctx, userA, userB)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "find or create conversation", err)
	}
	return conv, nil
}

func (s *chatService) SendMessage(ctx context.Context, conversationID, senderID, receiverID int64, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if senderID <= 0 || receiverID <= 0 || content == "" {
		return nil, errs.InvalidArg("required fields missing")
	}
	if senderID == receiverID {
		return nil, errs.InvalidArg("can't send a message to yourself")
	}

	var (
		conv *model.Conversation
		err  error
	)
	if conversationID > 0 {
		conv, err = s.convRepo.GetByID(ctx, conversationID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errs.NotFound("conversation not found")
			}
			return nil, errs.Wrap(errs.CodeInternal, "load conversation", err)
		}
		// 收发双方都必须是会话参与者
		if !conv.Has(senderID) || !conv.Has(receiverID) {
			return nil, errs.InvalidArg("sender and receiver must belong to the conversation")
		}
	} else {
		conv, err = s.FindOrCreateConversation(ctx, senderID, receiverID)
		if err != nil {
			return nil, err
		}
	}

	msg := &model.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Seen:           false,
	}
	if err := s.msgRepo.CreateInConversation(ctx, msg); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "create message", err)
	}
	s.unread.Incr(ctx, conv.ID, receiverID)
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, conversationID, callerID int64) ([]*model.Message, error) {
	if conversationID <= 0 {
		return nil, errs.InvalidArg("valid conversationId is required")
	}
	if callerID > 0 {
		conv, err := s.convRepo.GetByID(ctx, conversationID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errs.Forbidden("forbidden")
			}
			return nil, errs.Wrap(errs.CodeInternal, "load conversation", err)
		}
		if !conv.Has(callerID) {
			return nil, errs.Forbidden("forbidden")
		}
	}
	msgs, err := s.msgRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "list messages", err)
	}
	return msgs, nil
}

func (s *chatService) MarkSeen(ctx context.Context, conversationID, recipientID int64) error {
	if conversationID <= 0 || recipientID <= 0 {
		return errs.InvalidArg("required fields missing")
	}
	if err := s.msgRepo.MarkSeen(ctx, conversationID, recipientID); err != nil {
		return errs.Wrap(errs.CodeInternal, "mark seen", err)
	}
	s.unread.Invalidate(ctx, conversationID, recipientID)
	return nil
}

func (s *chatService) CountUnseen(ctx context.Context, conversationID, recipientID int64) (int64, error) {
	if n, ok := s.unread.Get(ctx, conversationID, recipientID); ok {
		return n, nil
	}
	n, err := s.msgRepo.CountUnseen(ctx, conversationID, recipientID)
	if err != nil {
		return 0, errs.Wrap(errs.CodeInternal, "count unseen", err)
	}
	s.unread.Set(ctx, conversationID, recipientID, n)
	return n, nil
}
