package monitor

import (
	"testing"

	"github.com/shenikar/saferoute_monitor/internal/geo"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMovementGate_FirstSampleAlwaysTriggers(t *testing.T) {
	gate := NewMovementGate(50)

	assert.True(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5, Longitude: 32.0}))
}

func TestMovementGate_BelowThreshold(t *testing.T) {
	gate := NewMovementGate(50)
	gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5, Longitude: 32.0})

	// Смещение ~11 метров при пороге 50
	assert.False(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5001, Longitude: 32.0}))
}

func TestMovementGate_ExactlyAtThreshold(t *testing.T) {
	reference := models.Coordinate{Latitude: 32.5, Longitude: 32.0}
	sample := models.Coordinate{Latitude: 32.5005, Longitude: 32.0}

	// Порог выставляется равным фактическому смещению: граница включающая
	gate := NewMovementGate(geo.DistanceMeters(reference, sample))
	gate.ShouldEvaluate(reference)

	assert.True(t, gate.ShouldEvaluate(sample))
}

func TestMovementGate_AboveThreshold(t *testing.T) {
	gate := NewMovementGate(50)
	gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5, Longitude: 32.0})

	// Смещение ~111 метров, заведомо больше порога
	assert.True(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.501, Longitude: 32.0}))
}

func TestMovementGate_ReferenceMovesOnlyOnTrigger(t *testing.T) {
	gate := NewMovementGate(100)
	gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5, Longitude: 32.0})

	// Серия мелких шагов: каждый ниже порога относительно опорной точки,
	// но суммарное смещение накапливается
	assert.False(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5004, Longitude: 32.0}))
	assert.False(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5008, Longitude: 32.0}))

	// Накопленное смещение от исходной опорной точки превышает порог
	assert.True(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.501, Longitude: 32.0}))

	// Опорная точка сдвинулась: тот же замер больше не срабатывает
	assert.False(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.501, Longitude: 32.0}))
}

func TestMovementGate_ForceMovesReference(t *testing.T) {
	gate := NewMovementGate(100)
	gate.ShouldEvaluate(models.Coordinate{Latitude: 32.5, Longitude: 32.0})

	// Принудительная оценка сдвигает опорную точку без проверки порога
	gate.Force(models.Coordinate{Latitude: 32.6, Longitude: 32.0})

	assert.False(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.6001, Longitude: 32.0}))
	assert.True(t, gate.ShouldEvaluate(models.Coordinate{Latitude: 32.61, Longitude: 32.0}))
}
