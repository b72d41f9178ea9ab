package notifier

import (
	"context"
	"fmt"

	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

// Service - канал доставки push-уведомлений: реестр устройств плюс
// очередь на отправку. Реализует monitor.PushNotifier.
type Service struct {
	registry  *DeviceRegistry
	publisher PushPublisher
	cfg       *config.Config
	logger    *logrus.Logger
}

// NewService создает сервис уведомлений
func NewService(registry *DeviceRegistry, publisher PushPublisher, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		registry:  registry,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Register регистрирует устройство как получателя уведомлений
func (s *Service) Register(device models.Device) {
	s.registry.Register(device)
}

// PermissionGranted - идемпотентная проверка "разрешения на уведомления":
// оно считается выданным, если настроен push-endpoint и зарегистрировано
// хотя бы одно устройство. Проверяется заново перед каждой отправкой.
func (s *Service) PermissionGranted() bool {
	return s.cfg.PushEndpoint != "" && s.registry.HasDevices()
}

// Push ставит уведомление в очередь для всех зарегистрированных устройств
func (s *Service) Push(ctx context.Context, title, body string, data map[string]string) error {
	tokens := s.registry.Tokens()
	if len(tokens) == 0 {
		return fmt.Errorf("notifier: no registered devices")
	}

	for _, token := range tokens {
		msg := PushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			return fmt.Errorf("notifier: failed to enqueue push message: %w", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"component": "notifier",
		"devices":   len(tokens),
	}).Debug("Push messages enqueued")
	return nil
}
