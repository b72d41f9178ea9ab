package geo

import (
	"math"

	"github.com/shenikar/saferoute_monitor/internal/models"
)

const (
	earthRadiusMeters = 6371000

	// kmPerDegree - длина одного градуса широты в километрах
	kmPerDegree = 111.32
)

// DistanceMeters возвращает расстояние по дуге большого круга между двумя
// точками в метрах (формула гаверсинусов). Симметрична и равна нулю для
// совпадающих точек.
func DistanceMeters(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CirclePolygon строит приближенный правильный многоугольник вокруг центра
// для отрисовки круглой зоны на карте. Используется только для визуализации,
// не для расчета риска. Вблизи полюсов и антимеридиана форма искажается.
func CirclePolygon(center models.Coordinate, radiusKm float64, segments int) []models.Coordinate {
	if segments < 3 {
		segments = 3
	}

	radiusDeg := radiusKm / kmPerDegree

	points := make([]models.Coordinate, 0, segments)
	step := 360.0 / float64(segments)
	for i := 0; i < segments; i++ {
		angle := toRad(float64(i) * step)
		points = append(points, models.Coordinate{
			Latitude:  center.Latitude + radiusDeg*math.Cos(angle),
			Longitude: center.Longitude + radiusDeg*math.Sin(angle),
		})
	}
	return points
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
