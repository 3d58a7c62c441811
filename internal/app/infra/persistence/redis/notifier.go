package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Notifier 计算完成通知客户端（Redis Pub/Sub）
// 仅做完成事件广播供仪表盘实时刷新，不持久化任何计算结果
type Notifier struct {
	rdb     *redis.Client
	channel string
}

// ComputationNotification 计算完成通知消息
type ComputationNotification struct {
	RequestID string `json:"request_id"`
	TenantID  string `json:"tenant_id"`
	Analysis  string `json:"analysis"`
	Status    string `json:"status"` // SUCCEEDED/FAILED
	Timestamp int64  `json:"timestamp"`
}

// 通知状态常量
const (
	NotifyStatusSucceeded = "SUCCEEDED"
	NotifyStatusFailed    = "FAILED"
)

// NewNotifier 创建通知客户端，支持密码认证
func NewNotifier(addr, password string, db int, channel string) (*Notifier, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Notifier{rdb: rdb, channel: channel}, nil
}

// PublishComputationComplete 发布计算完成通知
// 频道按租户隔离：{channel}:{tenantID}，订阅方只能收到本租户的事件
func (n *Notifier) PublishComputationComplete(ctx context.Context, notification *ComputationNotification) error {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := fmt.Sprintf("%s:%s", n.channel, notification.TenantID)
	if err := n.rdb.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Close 关闭连接
func (n *Notifier) Close() error {
	return n.rdb.Close()
}
