package monitor

import (
	"context"
	"time"

	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

// AlertDecision - решение гейта: показывать ли диалог и слать ли push
type AlertDecision struct {
	Dialog bool `json:"dialog"`
	Push   bool `json:"push"`
}

// Advisory - пользовательское предупреждение, порожденное переходом
type Advisory struct {
	Level     models.RiskLevel `json:"level"`
	Message   string           `json:"message"`
	Dialog    bool             `json:"dialog"`
	Push      bool             `json:"push"`
	CreatedAt time.Time        `json:"created_at"`
}

// AlertGate дедуплицирует и ограничивает частоту пользовательских
// предупреждений. Push-уведомления дополнительно гейтируются окном
// охлаждения и проверкой разрешения перед каждой отправкой.
type AlertGate struct {
	cooldown time.Duration
	notifier PushNotifier
	logger   *logrus.Logger
	now      func() time.Time
	lastPush time.Time
}

// NewAlertGate создает гейт предупреждений с заданным окном охлаждения
func NewAlertGate(cooldown time.Duration, notifier PushNotifier, logger *logrus.Logger) *AlertGate {
	return &AlertGate{
		cooldown: cooldown,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// MaybeAlert применяет политику предупреждений к переходу:
//   - смена уровня на A/B: диалог всегда, push - вне окна охлаждения и
//     только при выданном разрешении (иначе тихо деградируем до диалога);
//   - смена уровня на C/D: только диалог, это информация, а не тревога;
//   - без смены уровня: диалог только для ручной проверки, push никогда.
//
// Отправка push - fire-and-forget: сбой логируется и не мешает диалогу.
func (g *AlertGate) MaybeAlert(ctx context.Context, transition Transition) AlertDecision {
	log := g.logger.WithFields(logrus.Fields{
		"component": "alert_gate",
		"from":      string(transition.From),
		"to":        string(transition.To),
		"trigger":   string(transition.Trigger),
	})

	decision := AlertDecision{}

	if !transition.LevelChanged() {
		if transition.Trigger == TriggerManual {
			// Пользователь явно спросил - он всегда получает ответ
			decision.Dialog = true
		}
		return decision
	}

	decision.Dialog = true

	urgent := transition.To == models.RiskLevelA || transition.To == models.RiskLevelB
	if !urgent {
		return decision
	}

	if !g.cooldownElapsed() {
		log.Debug("Push suppressed by cooldown window")
		return decision
	}

	// Разрешение перепроверяется при каждой попытке: его состояние может
	// меняться на протяжении жизни сессии
	if !g.notifier.PermissionGranted() {
		log.Debug("Push permission not granted, downgrading to dialog only")
		return decision
	}

	decision.Push = true
	g.lastPush = g.now()

	title, body := pushContent(transition.To)
	go func() {
		if err := g.notifier.Push(ctx, title, body, map[string]string{
			"risk_level": string(transition.To),
		}); err != nil {
			log.WithError(err).Error("Failed to send push notification")
		}
	}()

	return decision
}

func (g *AlertGate) cooldownElapsed() bool {
	if g.lastPush.IsZero() {
		return true
	}
	return g.now().Sub(g.lastPush) > g.cooldown
}

// AdvisoryMessage возвращает текст предупреждения для уровня риска
func AdvisoryMessage(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelA:
		return "High risk area detected. Consider alternative routes"
	case models.RiskLevelB:
		return "Moderate risk area. Stay alert and avoid isolated spots"
	case models.RiskLevelC:
		return "Low risk area. Stay aware of your surroundings"
	default:
		return "This area looks safe"
	}
}

func pushContent(level models.RiskLevel) (string, string) {
	return "SafeRoute Alert", AdvisoryMessage(level)
}
