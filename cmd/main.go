package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/gateway"
	v1 "github.com/shenikar/saferoute_monitor/internal/handler/http/v1"
	"github.com/shenikar/saferoute_monitor/internal/monitor"
	"github.com/shenikar/saferoute_monitor/internal/notifier"
	"github.com/shenikar/saferoute_monitor/internal/tracker"
	"github.com/shenikar/saferoute_monitor/pkg/logger"
	mqttclient "github.com/shenikar/saferoute_monitor/pkg/mqtt"
	redisclient "github.com/shenikar/saferoute_monitor/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/saferoute_monitor/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SafeRoute Monitor API
// @version 1.0
// @description This is a SafeRoute risk monitoring agent API server.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента (очередь push-уведомлений)
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Подключение к MQTT-брокеру (источник замеров местоположения)
	mqttClient, err := mqttclient.NewMQTTClient(cfg.MQTTBroker, cfg.MQTTClientID)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer mqttClient.Disconnect(250)
	log.Info("Successfully connected to MQTT broker")

	// Инициализация канала push-уведомлений
	deviceRegistry := notifier.NewDeviceRegistry()
	pushPublisher := notifier.NewRedisPushPublisher(redisClient)
	pushNotifier := notifier.NewService(deviceRegistry, pushPublisher, cfg, log)

	// Инициализация и запуск воркера доставки push-уведомлений
	pushWorker := notifier.NewPushWorker(redisClient, log, cfg)
	pushWorker.Start(ctx)

	// Инициализация шлюза сервиса рисков
	riskClient := gateway.NewClient(cfg, log)

	// Инициализация трекера местоположения
	locationTracker := tracker.NewMQTTTracker(mqttClient, cfg.MQTTTopic, log)

	// Инициализация движка мониторинга
	engine := monitor.NewEngine(cfg, log, riskClient, locationTracker, pushNotifier)

	// Инициализация хэндлеров
	handler := v1.NewHandler(engine, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Активная сессия мониторинга завершается вместе с сервером
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := engine.StopSession(shutdownCtx); err != nil && err != monitor.ErrNoSession {
		log.WithError(err).Warn("Failed to stop monitoring session cleanly")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
