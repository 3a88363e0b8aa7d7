package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCache 按 (conversation, user) 缓存未读数。
// 读走 read-through：未命中时由调用方回源计数后 Set；
// 发消息 Incr 收件人计数，markSeen 直接 Del。
// client 为 nil 时整体旁路（所有读返回未命中）。
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUnreadCache(client *redis.Client, ttl time.Duration) *UnreadCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UnreadCache{client: client, ttl: ttl}
}

func key(conversationID, userID int64) string {
	return fmt.Sprintf("chat:unread:%d:%d", conversationID, userID)
}

// Get 返回 (count, hit)
func (c *UnreadCache) Get(ctx context.Context, conversationID, userID int64) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, key(conversationID, userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *UnreadCache) Set(ctx context.Context, conversationID, userID, count int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key(conversationID, userID), count, c.ttl).Err()
}

// Incr 仅在键已存在时自增，避免把过期键复活成错误计数
func (c *UnreadCache) Incr(ctx context.Context, conversationID, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	k := key(conversationID, userID)
	exists, err := c.client.Exists(ctx, k).Result()
	if err != nil || exists == 0 {
		return
	}
	_ = c.client.Incr(ctx, k).Err()
}

func (c *UnreadCache) Invalidate(ctx context.Context, conversationID, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key(conversationID, userID)).Err()
}
