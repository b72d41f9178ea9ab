package monitor

import (
	"github.com/shenikar/saferoute_monitor/internal/geo"
	"github.com/shenikar/saferoute_monitor/internal/models"
)

// MovementGate решает, достаточно ли устройство сместилось, чтобы
// оправдать новую оценку риска. Ограничивает сетевую нагрузку независимо
// от частоты, с которой платформа присылает замеры.
type MovementGate struct {
	thresholdMeters float64
	reference       models.Coordinate
	hasReference    bool
}

// NewMovementGate создает гейт с заданным порогом смещения в метрах
func NewMovementGate(thresholdMeters float64) *MovementGate {
	return &MovementGate{thresholdMeters: thresholdMeters}
}

// ShouldEvaluate возвращает true, если замер должен запустить оценку.
// Самый первый замер запускает оценку всегда. Каждый сработавший замер
// становится новой опорной точкой.
func (g *MovementGate) ShouldEvaluate(coord models.Coordinate) bool {
	if !g.hasReference {
		g.reference = coord
		g.hasReference = true
		return true
	}

	if geo.DistanceMeters(g.reference, coord) >= g.thresholdMeters {
		g.reference = coord
		return true
	}
	return false
}

// Force сдвигает опорную точку без проверки порога. Вызывается при
// принудительной оценке ("проверить сейчас"), которая обходит гейт.
func (g *MovementGate) Force(coord models.Coordinate) {
	g.reference = coord
	g.hasReference = true
}
