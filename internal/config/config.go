package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Risk Service Config
	RiskAPIBaseURL string        `env:"RISK_API_BASE_URL"`
	RequestTimeout time.Duration `env:"RISK_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxRetries     int           `env:"RISK_MAX_RETRIES" envDefault:"2"`
	RetryBackoff   time.Duration `env:"RISK_RETRY_BACKOFF" envDefault:"1s"`
	PointRadiusKm  float64       `env:"RISK_POINT_RADIUS_KM" envDefault:"0.1"`
	AreaRadiusKm   float64       `env:"RISK_AREA_RADIUS_KM" envDefault:"1.0"`

	// Monitoring Config
	DistanceThresholdMeters float64       `env:"DISTANCE_THRESHOLD_METERS" envDefault:"50"`
	AlertCooldown           time.Duration `env:"ALERT_COOLDOWN" envDefault:"60s"`
	ZoneRefreshInterval     time.Duration `env:"ZONE_REFRESH_INTERVAL" envDefault:"60s"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// MQTT Config (источник замеров местоположения)
	MQTTBroker   string `env:"MQTT_BROKER" envDefault:"tcp://localhost:1883"`
	MQTTClientID string `env:"MQTT_CLIENT_ID" envDefault:"saferoute-monitor"`
	MQTTTopic    string `env:"MQTT_TOPIC" envDefault:"saferoute/device/+/location"`

	// Push Config
	PushEndpoint   string        `env:"PUSH_ENDPOINT" envDefault:"https://exp.host/--/api/v2/push/send"`
	PushSecret     string        `env:"PUSH_SECRET"`
	PushTimeout    time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`
	PushMaxRetries int           `env:"PUSH_MAX_RETRIES" envDefault:"3"`
	PushBaseDelay  time.Duration `env:"PUSH_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		RiskAPIBaseURL:          os.Getenv("RISK_API_BASE_URL"),
		RequestTimeout:          getEnvAsDuration("RISK_REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:              getEnvAsInt("RISK_MAX_RETRIES", 2),
		RetryBackoff:            getEnvAsDuration("RISK_RETRY_BACKOFF", time.Second),
		PointRadiusKm:           getEnvAsFloat("RISK_POINT_RADIUS_KM", 0.1),
		AreaRadiusKm:            getEnvAsFloat("RISK_AREA_RADIUS_KM", 1.0),
		DistanceThresholdMeters: getEnvAsFloat("DISTANCE_THRESHOLD_METERS", 50),
		AlertCooldown:           getEnvAsDuration("ALERT_COOLDOWN", 60*time.Second),
		ZoneRefreshInterval:     getEnvAsDuration("ZONE_REFRESH_INTERVAL", 60*time.Second),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:               os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 getEnvAsInt("REDIS_DB", 0),
		MQTTBroker:              getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:            getEnv("MQTT_CLIENT_ID", "saferoute-monitor"),
		MQTTTopic:               getEnv("MQTT_TOPIC", "saferoute/device/+/location"),
		PushEndpoint:            getEnv("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),
		PushSecret:              os.Getenv("PUSH_SECRET"),
		PushTimeout:             getEnvAsDuration("PUSH_TIMEOUT", 5*time.Second),
		PushMaxRetries:          getEnvAsInt("PUSH_MAX_RETRIES", 3),
		PushBaseDelay:           getEnvAsDuration("PUSH_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.RiskAPIBaseURL == "" {
		return nil, fmt.Errorf("RISK_API_BASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
