package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/shenikar/saferoute_monitor/internal/monitor"
	"github.com/sirupsen/logrus"
)

const sampleBuffer = 16

// locationMessage - формат замера, публикуемого устройством в MQTT
type locationMessage struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

// MQTTTracker - источник замеров местоположения поверх MQTT.
// Go-воплощение платформенного location watch: подписка выдает ленивый
// бесконечный поток замеров до явной отмены.
type MQTTTracker struct {
	client mqtt.Client
	topic  string
	logger *logrus.Logger
}

// NewMQTTTracker создает трекер, читающий замеры из топика вида
// saferoute/device/+/location
func NewMQTTTracker(client mqtt.Client, topic string, logger *logrus.Logger) *MQTTTracker {
	return &MQTTTracker{
		client: client,
		topic:  topic,
		logger: logger,
	}
}

// Watch подписывается на поток замеров устройства. Ошибка подписки -
// аналог отказа платформы в доступе к местоположению.
func (t *MQTTTracker) Watch(_ context.Context, deviceID string) (monitor.Subscription, error) {
	topic := strings.Replace(t.topic, "+", deviceID, 1)

	sub := &mqttSubscription{
		client:  t.client,
		topic:   topic,
		samples: make(chan models.LocationSample, sampleBuffer),
		stopped: make(chan struct{}),
	}

	log := t.logger.WithFields(logrus.Fields{
		"component": "tracker",
		"topic":     topic,
		"device_id": deviceID,
	})

	token := t.client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		sample, err := decodeSample(msg.Payload())
		if err != nil {
			log.WithError(err).Warn("Dropping malformed location message")
			return
		}

		select {
		case sub.samples <- sample:
		case <-sub.stopped:
		default:
			// Потребитель не успевает - замер отбрасывается, очередь не растет
			log.Debug("Sample buffer full, dropping location sample")
		}
	})

	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("tracker: failed to subscribe to location topic: %w", token.Error())
	}

	log.Info("Location watch started")
	return sub, nil
}

// mqttSubscription - отменяемая подписка на поток замеров
type mqttSubscription struct {
	client  mqtt.Client
	topic   string
	samples chan models.LocationSample
	stopped chan struct{}
}

// Samples возвращает канал замеров местоположения
func (s *mqttSubscription) Samples() <-chan models.LocationSample {
	return s.samples
}

// Stop синхронно освобождает подписку: после возврата колбэки брокера
// больше не доставляются
func (s *mqttSubscription) Stop() {
	select {
	case <-s.stopped:
		return
	default:
	}
	close(s.stopped)

	token := s.client.Unsubscribe(s.topic)
	token.Wait()
}

func decodeSample(payload []byte) (models.LocationSample, error) {
	var raw locationMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.LocationSample{}, fmt.Errorf("invalid location payload: %w", err)
	}

	if err := validateLocationMessage(&raw); err != nil {
		return models.LocationSample{}, err
	}

	return models.LocationSample{
		Coordinate: models.Coordinate{
			Latitude:  raw.Latitude,
			Longitude: raw.Longitude,
		},
		AccuracyMeters: raw.Accuracy,
		Timestamp:      time.Unix(raw.Timestamp, 0),
	}, nil
}

func validateLocationMessage(msg *locationMessage) error {
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
