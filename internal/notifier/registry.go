package notifier

import (
	"sync"

	"github.com/shenikar/saferoute_monitor/internal/models"
)

// DeviceRegistry - реестр устройств для push-уведомлений. Хранится в
// памяти на время жизни процесса: переживание рестартов не требуется.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]models.Device
}

// NewDeviceRegistry создает пустой реестр устройств
func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		devices: make(map[string]models.Device),
	}
}

// Register добавляет или обновляет устройство по его device_id
func (r *DeviceRegistry) Register(device models.Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[device.DeviceID] = device
}

// Tokens возвращает push-токены всех зарегистрированных устройств
func (r *DeviceRegistry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.devices))
	for _, device := range r.devices {
		tokens = append(tokens, device.PushToken)
	}
	return tokens
}

// HasDevices сообщает, зарегистрировано ли хотя бы одно устройство
func (r *DeviceRegistry) HasDevices() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices) > 0
}
