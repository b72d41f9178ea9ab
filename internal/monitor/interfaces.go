package monitor

import (
	"context"

	"github.com/shenikar/saferoute_monitor/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// RiskClient определяет контракт для запросов к сервису оценки рисков
type RiskClient interface {
	QueryPointRisk(ctx context.Context, coord models.Coordinate, radiusKm float64) (models.RiskAssessment, error)
	QueryAreaRiskZones(ctx context.Context, center models.Coordinate, radiusKm float64) ([]models.RiskZone, error)
	SubmitReport(ctx context.Context, report models.CrimeReport) (models.RiskAssessment, error)
}

// Subscription - отменяемая подписка на поток замеров местоположения.
// Stop освобождает подписку синхронно; после возврата новые замеры
// в канал не поступают.
type Subscription interface {
	Samples() <-chan models.LocationSample
	Stop()
}

// LocationTracker абстрагирует платформенный источник местоположения
type LocationTracker interface {
	Watch(ctx context.Context, deviceID string) (Subscription, error)
}

// PushNotifier - канал доставки push-уведомлений. PermissionGranted -
// идемпотентная проверка разрешения, вызывается перед каждой отправкой.
type PushNotifier interface {
	Register(device models.Device)
	PermissionGranted() bool
	Push(ctx context.Context, title, body string, data map[string]string) error
}

// Service определяет контракт движка мониторинга для HTTP-слоя
type Service interface {
	StartSession(ctx context.Context, deviceID string, start models.Coordinate) (*StatusSnapshot, error)
	StopSession(ctx context.Context) error
	Status(ctx context.Context) (*StatusSnapshot, error)
	CheckNow(ctx context.Context) (*CheckResult, error)
	MapZones(ctx context.Context, segments int) ([]ZonePolygon, error)
	SubmitReport(ctx context.Context, report models.CrimeReport) (models.RiskAssessment, error)
	RegisterDevice(ctx context.Context, device models.Device) error
}
