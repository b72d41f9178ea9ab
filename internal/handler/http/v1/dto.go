package v1

import (
	"time"

	"github.com/google/uuid"
)

// StartSessionRequest DTO для запуска сессии мониторинга
// @Description DTO для запуска сессии мониторинга
type StartSessionRequest struct {
	DeviceID string `json:"device_id" validate:"required,min=1,max=64"`
	// Теги required здесь не используются: ноль - легальная координата
	// (экватор, нулевой меридиан), диапазон проверяют latitude/longitude
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// AdvisoryResponse DTO предупреждения о риске
// @Description DTO предупреждения о риске
type AdvisoryResponse struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Dialog    bool      `json:"dialog"`
	Push      bool      `json:"push"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse DTO для ответа с состоянием сессии
// @Description DTO для ответа с состоянием сессии
type StatusResponse struct {
	SessionID      uuid.UUID         `json:"session_id"`
	DeviceID       string            `json:"device_id"`
	Phase          string            `json:"phase"`
	Level          string            `json:"level"`
	Score          float64           `json:"score"`
	DistanceMeters *float64          `json:"distance_meters,omitempty"`
	LastAdvisory   *AdvisoryResponse `json:"last_advisory,omitempty"`
	ZoneCount      int               `json:"zone_count"`
	Evaluations    int               `json:"evaluations"`
	DroppedSamples int               `json:"dropped_samples"`
	StartedAt      time.Time         `json:"started_at"`
}

// CheckResponse DTO для результата ручной проверки риска
// @Description DTO для результата ручной проверки риска
type CheckResponse struct {
	Level          string            `json:"level"`
	Score          float64           `json:"score"`
	DistanceMeters *float64          `json:"distance_meters,omitempty"`
	Advisory       *AdvisoryResponse `json:"advisory,omitempty"`
}

// CoordinateResponse DTO координаты
// @Description DTO координаты
type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ZoneResponse DTO зоны риска с полигоном для отрисовки на карте
// @Description DTO зоны риска с полигоном для отрисовки на карте
type ZoneResponse struct {
	Center      CoordinateResponse   `json:"center"`
	RadiusKm    float64              `json:"radius_km"`
	Level       string               `json:"level"`
	Coordinates []CoordinateResponse `json:"coordinates"`
}

// CreateReportRequest DTO для сообщения об инциденте
// @Description DTO для сообщения об инциденте
type CreateReportRequest struct {
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	Description string  `json:"description" validate:"required,min=2,max=500"`
	Severity    int     `json:"severity" validate:"omitempty,gte=1,lte=4"`
}

// ReportResponse DTO для ответа на сообщение об инциденте
// @Description DTO для ответа на сообщение об инциденте
type ReportResponse struct {
	Level string  `json:"level"`
	Score float64 `json:"score"`
}

// RegisterDeviceRequest DTO для регистрации устройства
// @Description DTO для регистрации устройства
type RegisterDeviceRequest struct {
	DeviceID  string `json:"device_id" validate:"required,min=1,max=64"`
	PushToken string `json:"push_token" validate:"required"`
	Platform  string `json:"platform" validate:"required,oneof=ios android"`
}
