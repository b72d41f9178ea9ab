package monitor

import (
	"github.com/shenikar/saferoute_monitor/internal/geo"
	"github.com/shenikar/saferoute_monitor/internal/models"
)

// Phase - фаза конечного автомата риска
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseEvaluating    Phase = "evaluating"
	PhaseSettled       Phase = "settled"
)

// Trigger - источник запуска оценки
type Trigger string

const (
	TriggerAutomatic Trigger = "automatic"
	TriggerManual    Trigger = "manual"
)

// Transition - результат применения новой оценки к автомату
type Transition struct {
	From       models.RiskLevel
	To         models.RiskLevel
	Assessment models.RiskAssessment
	Trigger    Trigger
}

// LevelChanged сообщает, изменился ли уровень относительно предыдущего
func (t Transition) LevelChanged() bool {
	return t.From != t.To
}

// StateMachine держит текущую классификацию риска сессии.
// Переходы: Uninitialized -> Evaluating -> Settled(level), из Settled
// снова в Evaluating. Терминальных состояний нет; автомат живет столько
// же, сколько сессия.
type StateMachine struct {
	phase      Phase
	level      models.RiskLevel
	assessment models.RiskAssessment
}

// NewStateMachine создает автомат в неинициализированном состоянии
func NewStateMachine() *StateMachine {
	return &StateMachine{
		phase: PhaseUninitialized,
		level: models.RiskLevelUnknown,
	}
}

// Phase возвращает текущую фазу
func (m *StateMachine) Phase() Phase {
	return m.phase
}

// Level возвращает последний установившийся уровень риска
func (m *StateMachine) Level() models.RiskLevel {
	return m.level
}

// Assessment возвращает последнюю примененную оценку
func (m *StateMachine) Assessment() models.RiskAssessment {
	return m.assessment
}

// BeginEvaluation переводит автомат в фазу оценки, сохраняя прежний уровень
func (m *StateMachine) BeginEvaluation() {
	m.phase = PhaseEvaluating
}

// AbortEvaluation возвращает автомат в прежнее установившееся состояние.
// Вызывается при ошибке оценки: сбой никогда не меняет уровень.
func (m *StateMachine) AbortEvaluation() {
	if m.level == models.RiskLevelUnknown {
		m.phase = PhaseUninitialized
		return
	}
	m.phase = PhaseSettled
}

// Apply применяет новую оценку и возвращает описание перехода
func (m *StateMachine) Apply(assessment models.RiskAssessment, trigger Trigger) Transition {
	transition := Transition{
		From:       m.level,
		To:         assessment.Level,
		Assessment: assessment,
		Trigger:    trigger,
	}

	m.level = assessment.Level
	m.assessment = assessment
	m.phase = PhaseSettled
	return transition
}

// ClassifyPoint оценивает координату по набору зон. Зоны перебираются
// в порядке, возвращенном сервером; побеждает первая, в радиус которой
// попадает точка (без выбора ближайшей или самой опасной). Если ни одна
// зона не подходит - безопасный уровень по умолчанию.
func ClassifyPoint(coord models.Coordinate, zones []models.RiskZone) models.RiskAssessment {
	for _, zone := range zones {
		dist := geo.DistanceMeters(coord, zone.Center)
		if dist <= zone.RadiusKm*1000 {
			d := dist
			return models.RiskAssessment{
				Level:          zone.Level,
				Score:          zone.Level.NominalScore(),
				DistanceMeters: &d,
			}
		}
	}
	return models.RiskAssessment{Level: models.DefaultRiskLevel, Score: 0}
}
