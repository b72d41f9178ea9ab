package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSessionActive возвращается при попытке запустить вторую сессию
	ErrSessionActive = errors.New("monitoring session is already active")
	// ErrNoSession возвращается, когда активной сессии нет
	ErrNoSession = errors.New("no active monitoring session")
	// ErrEvaluationInFlight возвращается, если оценка уже выполняется
	ErrEvaluationInFlight = errors.New("risk evaluation is already in progress")
)

// Engine - оркестратор мониторинга: связывает трекер местоположения,
// гейт смещения, шлюз рисков, конечный автомат и гейт предупреждений
// в одну работающую сессию. Одновременно активна не более одной сессии.
type Engine struct {
	cfg      *config.Config
	logger   *logrus.Logger
	risk     RiskClient
	tracker  LocationTracker
	notifier PushNotifier

	mu      sync.Mutex
	current *session
}

// NewEngine создает движок мониторинга
func NewEngine(cfg *config.Config, logger *logrus.Logger, risk RiskClient, tracker LocationTracker, notifier PushNotifier) *Engine {
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		risk:     risk,
		tracker:  tracker,
		notifier: notifier,
	}
}

// StartSession запускает сессию мониторинга для устройства.
// Ошибка подписки на местоположение (аналог отказа в разрешении)
// поднимается к вызывающему и останавливает автоматический мониторинг.
func (e *Engine) StartSession(ctx context.Context, deviceID string, start models.Coordinate) (*StatusSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil {
		select {
		case <-e.current.done:
			// Предыдущая сессия уже завершилась сама
			e.current = nil
		default:
			return nil, ErrSessionActive
		}
	}

	sub, err := e.tracker.Watch(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("monitor: failed to start location watch: %w", err)
	}

	s := newSession(e.cfg, e.logger, e.risk, e.notifier, sub, deviceID, start)
	go s.run()
	e.current = s

	snapshot := StatusSnapshot{
		SessionID: s.id,
		DeviceID:  s.deviceID,
		Phase:     PhaseUninitialized,
		Level:     models.RiskLevelUnknown,
		StartedAt: s.startedAt,
	}
	return &snapshot, nil
}

// StopSession завершает активную сессию. Подписка на местоположение
// освобождается синхронно: после возврата новые замеры не обрабатываются.
func (e *Engine) StopSession(ctx context.Context) error {
	e.mu.Lock()
	s := e.current
	e.current = nil
	e.mu.Unlock()

	if s == nil {
		return ErrNoSession
	}

	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("monitor: session teardown interrupted: %w", ctx.Err())
	}
}

// Status возвращает согласованный снимок состояния активной сессии
func (e *Engine) Status(ctx context.Context) (*StatusSnapshot, error) {
	s := e.session()
	if s == nil {
		return nil, ErrNoSession
	}

	reply := make(chan StatusSnapshot, 1)
	select {
	case s.statusCh <- reply:
	case <-s.done:
		return nil, ErrNoSession
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case snapshot := <-reply:
		return &snapshot, nil
	case <-s.done:
		return nil, ErrNoSession
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CheckNow выполняет ручную проверку "проверить сейчас": гейт смещения
// обходится, ошибка сети поднимается к пользователю, а повторная
// проверка во время выполняющейся оценки отклоняется, не ставится в
// очередь.
func (e *Engine) CheckNow(ctx context.Context) (*CheckResult, error) {
	s := e.session()
	if s == nil {
		return nil, ErrNoSession
	}

	req := checkRequest{reply: make(chan checkReply, 1)}
	select {
	case s.checkCh <- req:
	case <-s.done:
		return nil, ErrNoSession
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rep := <-req.reply:
		return rep.result, rep.err
	case <-s.done:
		// Сессия завершилась, пока оценка была в полете: цикл событий уже
		// не обслужит ответ
		return nil, ErrNoSession
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// MapZones возвращает текущий набор зон как многоугольники для отрисовки
func (e *Engine) MapZones(ctx context.Context, segments int) ([]ZonePolygon, error) {
	s := e.session()
	if s == nil {
		return nil, ErrNoSession
	}

	req := zonesRequest{segments: segments, reply: make(chan []ZonePolygon, 1)}
	select {
	case s.mapCh <- req:
	case <-s.done:
		return nil, ErrNoSession
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case polygons := <-req.reply:
		return polygons, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SubmitReport пересылает сообщение об инциденте в сервис рисков
func (e *Engine) SubmitReport(ctx context.Context, report models.CrimeReport) (models.RiskAssessment, error) {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now().UTC()
	}

	assessment, err := e.risk.SubmitReport(ctx, report)
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("monitor: failed to submit report: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"component": "engine",
		"level":     string(assessment.Level),
	}).Info("Crime report submitted")
	return assessment, nil
}

// RegisterDevice регистрирует устройство для push-уведомлений.
// Регистрация и выдает "разрешение на уведомления" для сессии.
func (e *Engine) RegisterDevice(_ context.Context, device models.Device) error {
	e.notifier.Register(device)
	e.logger.WithFields(logrus.Fields{
		"component": "engine",
		"device_id": device.DeviceID,
		"platform":  device.Platform,
	}).Info("Device registered for push notifications")
	return nil
}

func (e *Engine) session() *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}
