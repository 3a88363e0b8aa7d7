package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/logger"
)

// Notifier 通知旁路写入器：点赞/评论等主写操作只入队，落库由后台
// worker 完成。队列满即丢弃并告警，通知失败永不影响触发它的主操作。
type Notifier struct {
	repo repository.NotificationRepository
	ch   chan *model.Notification
}

func NewNotifier(repo repository.NotificationRepository, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &Notifier{repo: repo, ch: make(chan *model.Notification, queueSize)}
}

// Start 启动 workers 个落库协程；返回停止函数（等待队列自然排空一小段时间）。
func (n *Notifier) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-n.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := n.repo.Create(ctx, job); err != nil {
						logger.Warn("notification write failed",
							zap.Int64("user", job.UserID),
							zap.String("type", job.Type),
							zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(n.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// Enqueue 非阻塞入队；队列满时丢弃
func (n *Notifier) Enqueue(notification *model.Notification) {
	if n == nil {
		return
	}
	select {
	case n.ch <- notification:
	default:
		logger.Warn("notifier queue full, drop",
			zap.Int64("user", notification.UserID),
			zap.String("type", notification.Type))
	}
}

// QueueLen 当前队列长度（采样值）。
func (n *Notifier) QueueLen() int { return len(n.ch) }
