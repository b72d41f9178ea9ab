package v1

import (
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/shenikar/saferoute_monitor/internal/monitor"
)

// DTOToCrimeReport преобразует DTO сообщения об инциденте в доменную модель
func DTOToCrimeReport(dto CreateReportRequest) models.CrimeReport {
	return models.CrimeReport{
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Description: dto.Description,
		Severity:    dto.Severity,
	}
}

// DTOToDevice преобразует DTO регистрации устройства в доменную модель
func DTOToDevice(dto RegisterDeviceRequest) models.Device {
	return models.Device{
		DeviceID:  dto.DeviceID,
		PushToken: dto.PushToken,
		Platform:  dto.Platform,
	}
}

// AdvisoryToResponse преобразует предупреждение в DTO для ответа
func AdvisoryToResponse(advisory *monitor.Advisory) *AdvisoryResponse {
	if advisory == nil {
		return nil
	}
	return &AdvisoryResponse{
		Level:     string(advisory.Level),
		Message:   advisory.Message,
		Dialog:    advisory.Dialog,
		Push:      advisory.Push,
		CreatedAt: advisory.CreatedAt,
	}
}

// SnapshotToStatusResponse преобразует снимок состояния сессии в DTO
func SnapshotToStatusResponse(snapshot *monitor.StatusSnapshot) *StatusResponse {
	return &StatusResponse{
		SessionID:      snapshot.SessionID,
		DeviceID:       snapshot.DeviceID,
		Phase:          string(snapshot.Phase),
		Level:          string(snapshot.Level),
		Score:          snapshot.Assessment.Score,
		DistanceMeters: snapshot.Assessment.DistanceMeters,
		LastAdvisory:   AdvisoryToResponse(snapshot.LastAdvisory),
		ZoneCount:      snapshot.ZoneCount,
		Evaluations:    snapshot.Evaluations,
		DroppedSamples: snapshot.DroppedSamples,
		StartedAt:      snapshot.StartedAt,
	}
}

// CheckResultToResponse преобразует результат ручной проверки в DTO
func CheckResultToResponse(result *monitor.CheckResult) *CheckResponse {
	return &CheckResponse{
		Level:          string(result.Assessment.Level),
		Score:          result.Assessment.Score,
		DistanceMeters: result.Assessment.DistanceMeters,
		Advisory:       AdvisoryToResponse(result.Advisory),
	}
}

// PolygonsToZoneResponses преобразует слайс зон в слайс DTO
func PolygonsToZoneResponses(polygons []monitor.ZonePolygon) []ZoneResponse {
	responses := make([]ZoneResponse, len(polygons))
	for i, polygon := range polygons {
		coords := make([]CoordinateResponse, len(polygon.Coordinates))
		for j, coord := range polygon.Coordinates {
			coords[j] = CoordinateResponse{Latitude: coord.Latitude, Longitude: coord.Longitude}
		}
		responses[i] = ZoneResponse{
			Center:      CoordinateResponse{Latitude: polygon.Center.Latitude, Longitude: polygon.Center.Longitude},
			RadiusKm:    polygon.RadiusKm,
			Level:       string(polygon.Level),
			Coordinates: coords,
		}
	}
	return responses
}

// AssessmentToReportResponse преобразует оценку риска в DTO ответа на сообщение
func AssessmentToReportResponse(assessment models.RiskAssessment) ReportResponse {
	return ReportResponse{
		Level: string(assessment.Level),
		Score: assessment.Score,
	}
}
