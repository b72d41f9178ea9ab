package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	pushQueueKey = "push_notifications"
)

// PushMessage - сообщение в формате Expo push-сервиса
type PushMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushPublisher - интерфейс для постановки уведомлений в очередь
type PushPublisher interface {
	Publish(ctx context.Context, msg PushMessage) error
}

// RedisPushPublisher - реализация PushPublisher, использующая Redis
type RedisPushPublisher struct {
	redisClient *redis.Client
}

// NewRedisPushPublisher создает новый RedisPushPublisher
func NewRedisPushPublisher(client *redis.Client) *RedisPushPublisher {
	return &RedisPushPublisher{
		redisClient: client,
	}
}

// Publish ставит уведомление в очередь Redis
func (p *RedisPushPublisher) Publish(ctx context.Context, msg PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	// LPUSH добавляет сообщение в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, pushQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish push message to Redis: %w", err)
	}
	return nil
}
