package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_map/internal/models"
)

const (
	sosQueueKey = "sos_alert_events"
)

// SOSAlertEvent - событие SOS для доставки во внешний шлюз оповещений
type SOSAlertEvent struct {
	EventID    int64               `json:"event_id"`
	UserID     string              `json:"user_id"`
	Email      string              `json:"email,omitempty"`
	Latitude   float64             `json:"latitude"`
	Longitude  float64             `json:"longitude"`
	Message    string              `json:"message,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
	Recipients []*models.Recipient `json:"recipients"`
}

// WebhookPublisher - интерфейс для публикации SOS-событий
type WebhookPublisher interface {
	Publish(ctx context.Context, event SOSAlertEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event SOSAlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sos event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, sosQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sos event to Redis: %w", err)
	}
	return nil
}
