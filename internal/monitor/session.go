package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/geo"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusSnapshot - согласованный снимок состояния сессии.
// Собирается внутри цикла событий, поэтому никогда не показывает
// наполовину примененный переход.
type StatusSnapshot struct {
	SessionID      uuid.UUID             `json:"session_id"`
	DeviceID       string                `json:"device_id"`
	Phase          Phase                 `json:"phase"`
	Level          models.RiskLevel      `json:"level"`
	Assessment     models.RiskAssessment `json:"assessment"`
	LastEvaluated  *models.Coordinate    `json:"last_evaluated,omitempty"`
	LastAdvisory   *Advisory             `json:"last_advisory,omitempty"`
	ZoneCount      int                   `json:"zone_count"`
	Evaluations    int                   `json:"evaluations"`
	DroppedSamples int                   `json:"dropped_samples"`
	StartedAt      time.Time             `json:"started_at"`
}

// CheckResult - ответ на ручную проверку "проверить сейчас"
type CheckResult struct {
	Assessment models.RiskAssessment `json:"assessment"`
	Advisory   *Advisory             `json:"advisory,omitempty"`
}

// ZonePolygon - зона риска, подготовленная для отрисовки на карте
type ZonePolygon struct {
	Center      models.Coordinate   `json:"center"`
	RadiusKm    float64             `json:"radius_km"`
	Level       models.RiskLevel    `json:"level"`
	Coordinates []models.Coordinate `json:"coordinates"`
}

type evalResult struct {
	assessment models.RiskAssessment
	err        error
	trigger    Trigger
	coord      models.Coordinate
	reply      chan checkReply // не nil для ручной проверки
}

type zoneResult struct {
	zones []models.RiskZone
	err   error
}

type checkRequest struct {
	reply chan checkReply
}

type checkReply struct {
	result *CheckResult
	err    error
}

type zonesRequest struct {
	segments int
	reply    chan []ZonePolygon
}

// session - живое состояние мониторинга. Все изменяемые поля принадлежат
// горутине run(): единственный цикл событий заменяет блокировки.
type session struct {
	id       uuid.UUID
	deviceID string
	cfg      *config.Config
	logger   *logrus.Entry
	risk     RiskClient
	gate     *MovementGate
	machine  *StateMachine
	alerts   *AlertGate
	sub      Subscription

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	startCoord     models.Coordinate
	lastSample     *models.LocationSample
	lastEvaluated  *models.Coordinate
	lastAdvisory   *Advisory
	zones          []models.RiskZone
	zonesLoaded    bool
	zoneInFlight   bool
	inFlight       bool
	evaluations    int
	droppedSamples int
	startedAt      time.Time

	evalCh   chan evalResult
	zonesCh  chan zoneResult
	statusCh chan chan StatusSnapshot
	checkCh  chan checkRequest
	mapCh    chan zonesRequest
}

func newSession(cfg *config.Config, logger *logrus.Logger, risk RiskClient, notifier PushNotifier, sub Subscription, deviceID string, start models.Coordinate) *session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()

	return &session{
		id:         id,
		deviceID:   deviceID,
		cfg:        cfg,
		logger:     logger.WithFields(logrus.Fields{"component": "session", "session_id": id, "device_id": deviceID}),
		risk:       risk,
		gate:       NewMovementGate(cfg.DistanceThresholdMeters),
		machine:    NewStateMachine(),
		alerts:     NewAlertGate(cfg.AlertCooldown, notifier, logger),
		sub:        sub,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		startCoord: start,
		startedAt:  time.Now(),
		evalCh:     make(chan evalResult, 1),
		zonesCh:    make(chan zoneResult, 1),
		statusCh:   make(chan chan StatusSnapshot),
		checkCh:    make(chan checkRequest),
		mapCh:      make(chan zonesRequest),
	}
}

// run - единственный цикл событий сессии. Подписка освобождается
// синхронно при выходе; результаты запросов, пришедшие после завершения,
// отбрасываются.
func (s *session) run() {
	defer close(s.done)
	defer s.sub.Stop()

	s.logger.Info("Monitoring session started")

	ticker := time.NewTicker(s.cfg.ZoneRefreshInterval)
	defer ticker.Stop()

	// Первая загрузка зон сразу при старте
	s.refreshZones()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Monitoring session stopped")
			return
		case sample, ok := <-s.sub.Samples():
			if !ok {
				s.logger.Warn("Location stream closed, ending session")
				return
			}
			s.handleSample(sample)
		case res := <-s.evalCh:
			s.handleEvalResult(res)
		case res := <-s.zonesCh:
			s.handleZones(res)
		case <-ticker.C:
			s.refreshZones()
		case reply := <-s.statusCh:
			reply <- s.snapshot()
		case req := <-s.checkCh:
			s.handleCheck(req)
		case req := <-s.mapCh:
			req.reply <- s.zonePolygons(req.segments)
		}
	}
}

func (s *session) handleSample(sample models.LocationSample) {
	if !sample.Coordinate.IsValid() {
		s.logger.WithField("sample", sample).Warn("Dropping sample with invalid coordinates")
		return
	}

	smp := sample
	s.lastSample = &smp

	// Инвариант: не больше одной оценки в полете. Лишние замеры
	// отбрасываются, а не ставятся в очередь.
	if s.inFlight {
		s.droppedSamples++
		s.logger.Debug("Evaluation in flight, dropping sample")
		return
	}

	if !s.gate.ShouldEvaluate(sample.Coordinate) {
		return
	}

	if s.zonesLoaded {
		// Локальная классификация по набору зон выполняется мгновенно,
		// внутри одного такта цикла
		assessment := ClassifyPoint(sample.Coordinate, s.zones)
		s.settle(assessment, TriggerAutomatic, sample.Coordinate, nil)
		return
	}

	// До первой загрузки зон остается точечный запрос к сервису
	s.beginRemoteEvaluation(sample.Coordinate, TriggerAutomatic, nil)
}

func (s *session) beginRemoteEvaluation(coord models.Coordinate, trigger Trigger, reply chan checkReply) {
	s.inFlight = true
	s.machine.BeginEvaluation()

	go func() {
		assessment, err := s.risk.QueryPointRisk(context.Background(), coord, s.cfg.PointRadiusKm)
		select {
		case s.evalCh <- evalResult{assessment: assessment, err: err, trigger: trigger, coord: coord, reply: reply}:
		case <-s.done:
			// Сессия уже завершена: результат отбрасывается
			if reply != nil {
				reply <- checkReply{err: ErrNoSession}
			}
		}
	}()
}

func (s *session) handleEvalResult(res evalResult) {
	s.inFlight = false

	if res.err != nil {
		s.machine.AbortEvaluation()
		if res.trigger == TriggerManual {
			// Пользователь ждет ответа - ошибка поднимается к нему
			s.logger.WithError(res.err).Warn("Manual risk check failed")
			res.reply <- checkReply{err: res.err}
			return
		}
		// Ошибки фоновой оценки проглатываются: сессия сохраняет
		// последний подтвержденный уровень
		s.logger.WithError(res.err).Warn("Background risk evaluation failed, keeping last level")
		return
	}

	s.settle(res.assessment, res.trigger, res.coord, res.reply)
}

func (s *session) settle(assessment models.RiskAssessment, trigger Trigger, coord models.Coordinate, reply chan checkReply) {
	s.evaluations++
	c := coord
	s.lastEvaluated = &c

	transition := s.machine.Apply(assessment, trigger)
	decision := s.alerts.MaybeAlert(s.ctx, transition)

	var advisory *Advisory
	if decision.Dialog {
		advisory = &Advisory{
			Level:     transition.To,
			Message:   AdvisoryMessage(transition.To),
			Dialog:    true,
			Push:      decision.Push,
			CreatedAt: time.Now(),
		}
		s.lastAdvisory = advisory
		s.logger.WithFields(logrus.Fields{
			"level":   string(transition.To),
			"from":    string(transition.From),
			"trigger": string(trigger),
			"push":    decision.Push,
		}).Info("Risk advisory raised")
	}

	if reply != nil {
		reply <- checkReply{result: &CheckResult{Assessment: assessment, Advisory: advisory}}
	}
}

func (s *session) handleCheck(req checkRequest) {
	if s.inFlight {
		req.reply <- checkReply{err: ErrEvaluationInFlight}
		return
	}

	coord := s.currentCoordinate()
	// Принудительная оценка обходит гейт, но опорную точку все равно сдвигает
	s.gate.Force(coord)
	s.beginRemoteEvaluation(coord, TriggerManual, req.reply)
}

func (s *session) refreshZones() {
	if s.zoneInFlight {
		return
	}
	s.zoneInFlight = true
	center := s.currentCoordinate()

	go func() {
		zones, err := s.risk.QueryAreaRiskZones(context.Background(), center, s.cfg.AreaRadiusKm)
		select {
		case s.zonesCh <- zoneResult{zones: zones, err: err}:
		case <-s.done:
		}
	}()
}

func (s *session) handleZones(res zoneResult) {
	s.zoneInFlight = false
	if res.err != nil {
		// Прежний набор зон остается в силе
		s.logger.WithError(res.err).Warn("Failed to refresh risk zones")
		return
	}

	// Набор зон заменяется целиком, без инкрементального слияния
	s.zones = res.zones
	s.zonesLoaded = true
	s.logger.WithField("count", len(res.zones)).Debug("Risk zones refreshed")
}

func (s *session) currentCoordinate() models.Coordinate {
	if s.lastSample != nil {
		return s.lastSample.Coordinate
	}
	return s.startCoord
}

func (s *session) snapshot() StatusSnapshot {
	return StatusSnapshot{
		SessionID:      s.id,
		DeviceID:       s.deviceID,
		Phase:          s.machine.Phase(),
		Level:          s.machine.Level(),
		Assessment:     s.machine.Assessment(),
		LastEvaluated:  s.lastEvaluated,
		LastAdvisory:   s.lastAdvisory,
		ZoneCount:      len(s.zones),
		Evaluations:    s.evaluations,
		DroppedSamples: s.droppedSamples,
		StartedAt:      s.startedAt,
	}
}

func (s *session) zonePolygons(segments int) []ZonePolygon {
	polygons := make([]ZonePolygon, 0, len(s.zones))
	for _, zone := range s.zones {
		polygons = append(polygons, ZonePolygon{
			Center:      zone.Center,
			RadiusKm:    zone.RadiusKm,
			Level:       zone.Level,
			Coordinates: geo.CirclePolygon(zone.Center, zone.RadiusKm, segments),
		})
	}
	return polygons
}
