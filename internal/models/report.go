package models

import "time"

// CrimeReport - сообщение пользователя об инциденте, отправляется в сервис рисков
type CrimeReport struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
	Severity    int       `json:"severity"`
}

// Device - зарегистрированное устройство для push-уведомлений
type Device struct {
	DeviceID  string `json:"device_id"`
	PushToken string `json:"push_token"`
	Platform  string `json:"platform"`
}
