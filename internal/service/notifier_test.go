package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
)

func TestNotifier_WritesThroughWorkers(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotifier(repository.NewNotificationRepository(db), 16)
	stop := notifier.Start(2)
	defer stop(context.Background())

	for i := 0; i < 5; i++ {
		notifier.Enqueue(&model.Notification{
			UserID: 1, FromUserID: 2,
			Type: model.NotificationTypeLike, Message: "liked your post",
		})
	}
	waitNotifications(t, db, 5)
}

func TestNotifier_DropWhenQueueFull(t *testing.T) {
	db := setupTestDB(t)
	// 不启动 worker：队列只进不出
	notifier := NewNotifier(repository.NewNotificationRepository(db), 2)

	for i := 0; i < 10; i++ {
		notifier.Enqueue(&model.Notification{UserID: 1, FromUserID: 2, Type: model.NotificationTypeLike})
	}
	// 超出容量的被丢弃，Enqueue 从不阻塞
	require.Equal(t, 2, notifier.QueueLen())
}

func TestNotifier_StopReturnsPromptly(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotifier(repository.NewNotificationRepository(db), 64)
	stop := notifier.Start(1)

	for i := 0; i < 10; i++ {
		notifier.Enqueue(&model.Notification{UserID: 1, FromUserID: 2, Type: model.NotificationTypeComment})
	}
	waitNotifications(t, db, 1)

	done := make(chan error, 1)
	go func() { done <- stop(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return")
	}
}
