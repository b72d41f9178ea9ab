package notifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/sirupsen/logrus"
)

// PushWorker - воркер доставки push-уведомлений: извлекает сообщения из
// очереди Redis и отправляет их на push-endpoint (Expo-совместимый)
type PushWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewPushWorker создает новый PushWorker
func NewPushWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *PushWorker {
	return &PushWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.PushTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *PushWorker) Start(ctx context.Context) {
	w.logger.Info("Starting push notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping push notification worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части очереди,
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, pushQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop push message from Redis")
					time.Sleep(w.cfg.PushBaseDelay) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var msg PushMessage
				if err := json.Unmarshal([]byte(payload), &msg); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal push message from Redis")
					continue
				}

				w.deliver(ctx, msg, payload)
			}
		}
	}()
}

func (w *PushWorker) deliver(ctx context.Context, msg PushMessage, rawPayload string) {
	log := w.logger.WithField("push_to", msg.To).WithField("title", msg.Title)
	log.Debug("Delivering push notification...")

	if w.cfg.PushEndpoint == "" {
		log.Warn("Push endpoint is not configured. Skipping delivery.")
		return
	}

	maxRetries := w.cfg.PushMaxRetries
	baseDelay := w.cfg.PushBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", w.cfg.PushEndpoint, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create push request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		// Добавляем HMAC подпись, если PUSH_SECRET задан
		if w.cfg.PushSecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.PushSecret)
			req.Header.Set("X-Push-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send push notification. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2 // Экспоненциальная задержка
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Info("Push notification delivered successfully.")
			return
		}

		log.Warnf("Push delivery failed with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver push notification after %d retries.", maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
