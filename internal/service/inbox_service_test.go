package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newInboxFixture(t *testing.T, db *gorm.DB) (InboxService, ChatService) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	chat := NewChatService(convRepo, msgRepo, nil)
	profiles := NewProfileService(userRepo, profileRepo)
	return NewInboxService(chat, convRepo, msgRepo, profiles), chat
}

func TestListThreads_ViewAssembly(t *testing.T) {
	db := setupTestDB(t)
	inbox, chat := newInboxFixture(t, db)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	u3 := seedUser(t, db, "u3@example.com")

	m12, err := chat.SendMessage(ctx, 0, u1.ID, u2.ID, "to u2")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = chat.SendMessage(ctx, 0, u3.ID, u1.ID, "to u1")
	require.NoError(t, err)

	threads, err := inbox.ListThreads(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	// 最近活跃在前：u3 的会话后发消息
	require.Equal(t, u3.ID, threads[0].User.ID)
	require.Equal(t, "to u1", threads[0].LastMessage.Content)
	require.Equal(t, int64(1), threads[0].UnreadCount) // u1 未读

	require.Equal(t, u2.ID, threads[1].User.ID)
	require.Equal(t, m12.ConversationID, threads[1].ConversationID)
	require.Zero(t, threads[1].UnreadCount) // u1 是发送方

	// 对端视角
	threads, err = inbox.ListThreads(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Equal(t, u1.ID, threads[0].User.ID)
	require.Equal(t, int64(1), threads[0].UnreadCount)
}

func TestListThreads_NeverLeaksForeignConversations(t *testing.T) {
	db := setupTestDB(t)
	inbox, chat := newInboxFixture(t, db)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	outsider := seedUser(t, db, "u9@example.com")

	_, err := chat.SendMessage(ctx, 0, u1.ID, u2.ID, "hi")
	require.NoError(t, err)

	threads, err := inbox.ListThreads(ctx, outsider.ID)
	require.NoError(t, err)
	require.Empty(t, threads)
}

func TestListThreads_EmptyConversationNilLastMessage(t *testing.T) {
	db := setupTestDB(t)
	inbox, chat := newInboxFixture(t, db)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	_, err := chat.FindOrCreateConversation(ctx, u1.ID, u2.ID)
	require.NoError(t, err)

	threads, err := inbox.ListThreads(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Nil(t, threads[0].LastMessage)
	require.Zero(t, threads[0].UnreadCount)
}

func TestStartConversation(t *testing.T) {
	db := setupTestDB(t)
	inbox, _ := newInboxFixture(t, db)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")

	id1, existed, err := inbox.StartConversation(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.False(t, existed)

	id2, existed, err := inbox.StartConversation(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, id1, id2)

	_, _, err = inbox.StartConversation(ctx, u1.ID, u1.ID)
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
}

func TestListInbox_DistinctSenders(t *testing.T) {
	db := setupTestDB(t)
	inbox, chat := newInboxFixture(t, db)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	u3 := seedUser(t, db, "u3@example.com")

	_, err := chat.SendMessage(ctx, 0, u2.ID, u1.ID, "first")
	require.NoError(t, err)
	_, err = chat.SendMessage(ctx, 0, u2.ID, u1.ID, "second")
	require.NoError(t, err)
	_, err = chat.SendMessage(ctx, 0, u3.ID, u1.ID, "other")
	require.NoError(t, err)

	items, err := inbox.ListInbox(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	contents := map[int64]string{}
	for _, it := range items {
		contents[it.Sender.ID] = it.Message.Content
	}
	require.Equal(t, "second", contents[u2.ID])
	require.Equal(t, "other", contents[u3.ID])
}
