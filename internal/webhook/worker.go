package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const signatureHeader = "X-Webhook-Signature"

// WebhookWorker забирает SOS-события из очереди и доставляет их во внешний шлюз
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	sleep       func(ctx context.Context, d time.Duration)
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	w := &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		sleep: sleepCtx,
	}
	w.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sos-webhook",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Webhook circuit breaker state changed")

			switch to {
			case gobreaker.StateClosed:
				metrics.WebhookCircuitBreakerState.Set(metrics.CircuitBreakerClosed)
			case gobreaker.StateOpen:
				metrics.WebhookCircuitBreakerState.Set(metrics.CircuitBreakerOpen)
			case gobreaker.StateHalfOpen:
				metrics.WebhookCircuitBreakerState.Set(metrics.CircuitBreakerHalfOpen)
			}
		},
	})
	return w
}

// Start запускает горутину для обработки очереди SOS-событий
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping webhook worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из хвоста очереди, 0 - бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, sosQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop sos event from Redis")
					w.sleep(ctx, w.cfg.WebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event SOSAlertEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal sos event from Redis")
					continue
				}

				w.processEvent(ctx, event, payload)
			}
		}
	}()
}

func (w *WebhookWorker) processEvent(ctx context.Context, event SOSAlertEvent, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"event_id":   event.EventID,
		"user_id":    event.UserID,
		"recipients": len(event.Recipients),
	})
	log.Debug("Processing sos event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping sos delivery.")
		metrics.WebhookDeliveries.WithLabelValues("skipped").Inc()
		return false
	}

	_, err := w.breaker.Execute(func() (interface{}, error) {
		return nil, w.deliverWithRetry(ctx, log, rawPayload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.WithError(err).Error("Webhook circuit breaker open, sos event dropped")
			metrics.WebhookDeliveries.WithLabelValues("breaker_open").Inc()
			return false
		}
		log.WithError(err).Errorf("Failed to deliver sos event after %d retries.", w.cfg.WebhookMaxRetries)
		metrics.WebhookDeliveries.WithLabelValues("failed").Inc()
		return false
	}

	log.Info("SOS event delivered successfully.")
	metrics.WebhookDeliveries.WithLabelValues("success").Inc()
	return true
}

func (w *WebhookWorker) deliverWithRetry(ctx context.Context, log *logrus.Entry, rawPayload string) error {
	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lastErr = w.send(ctx, rawPayload)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < maxRetries-1 {
			log.WithError(lastErr).Warnf("SOS delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
			w.sleep(ctx, delay)
			delay *= 2 // экспоненциальная задержка
		}
	}
	return lastErr
}

func (w *WebhookWorker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed with status code %d", resp.StatusCode)
	}
	return nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
