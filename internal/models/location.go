package models

import (
	"time"
)

// Coordinate - географическая точка в градусах (WGS-84). Неизменяемое значение.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsValid проверяет, что координата лежит в допустимых пределах
func (c Coordinate) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// LocationSample - один замер местоположения устройства.
// Производится трекером, передается всегда по значению.
type LocationSample struct {
	Coordinate     Coordinate `json:"coordinate"`
	AccuracyMeters float64    `json:"accuracy_meters"`
	Timestamp      time.Time  `json:"timestamp"`
}
