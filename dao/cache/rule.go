package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ruleInvalidateChannel = "vip:rules:invalidate"

// RuleStorage 规则缓存的跨实例失效广播。
// 本地 TTL 缓存是进程级的，管理端改规则后通过 redis 通知所有实例清缓存。
type RuleStorage struct {
	redis *redis.Client
}

func NewRuleStorage(redis *redis.Client) *RuleStorage {
	return &RuleStorage{redis: redis}
}

// PublishInvalidate 广播某个动作类型的规则已变更，空串表示全部失效
func (s *RuleStorage) PublishInvalidate(ctx context.Context, actionType string) error {
	return s.redis.Publish(ctx, ruleInvalidateChannel, actionType).Err()
}

// Subscribe 订阅失效消息，返回动作类型的通道
func (s *RuleStorage) Subscribe(ctx context.Context) <-chan string {
	sub := s.redis.Subscribe(ctx, ruleInvalidateChannel)
	out := make(chan string)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				out <- msg.Payload
			}
		}
	}()

	return out
}
