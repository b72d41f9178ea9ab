package models

// RiskLevel - упорядоченная классификация риска: A (наибольший риск) .. D (безопасно)
type RiskLevel string

const (
	RiskLevelA RiskLevel = "A"
	RiskLevelB RiskLevel = "B"
	RiskLevelC RiskLevel = "C"
	RiskLevelD RiskLevel = "D"

	// RiskLevelUnknown - уровень до первой успешной оценки
	RiskLevelUnknown RiskLevel = ""

	// DefaultRiskLevel - консервативное значение по умолчанию: отсутствие
	// классификации никогда не трактуется как высокий риск
	DefaultRiskLevel = RiskLevelD
)

// IsValid проверяет, что уровень принадлежит множеству A..D
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelA, RiskLevelB, RiskLevelC, RiskLevelD:
		return true
	}
	return false
}

// Severity возвращает числовую серьезность уровня: A=4 .. D=1, неизвестный=0
func (l RiskLevel) Severity() int {
	switch l {
	case RiskLevelA:
		return 4
	case RiskLevelB:
		return 3
	case RiskLevelC:
		return 2
	case RiskLevelD:
		return 1
	}
	return 0
}

// MoreSevereThan сравнивает два уровня по серьезности
func (l RiskLevel) MoreSevereThan(other RiskLevel) bool {
	return l.Severity() > other.Severity()
}

// NominalScore возвращает середину диапазона оценки для уровня.
// Диапазоны взяты из серверной классификации (A: 0.75-1, B: 0.5-0.75 и т.д.).
func (l RiskLevel) NominalScore() float64 {
	switch l {
	case RiskLevelA:
		return 0.875
	case RiskLevelB:
		return 0.625
	case RiskLevelC:
		return 0.375
	case RiskLevelD:
		return 0.125
	}
	return 0
}

// RiskZone - круглая геозона с уровнем риска. Неизменяемая; набор зон
// целиком заменяется при каждом площадном запросе.
type RiskZone struct {
	Center   Coordinate `json:"center"`
	RadiusKm float64    `json:"radius_km"`
	Level    RiskLevel  `json:"level"`
}

// RiskAssessment - результат оценки одного замера. Создается заново при
// каждой оценке и после создания не изменяется.
type RiskAssessment struct {
	Level RiskLevel `json:"level"`
	Score float64   `json:"score"`
	// DistanceMeters - расстояние до центра сработавшей зоны; nil для
	// прямого точечного запроса к сервису
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}
