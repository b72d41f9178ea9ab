package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Маршруты жизненного цикла сессии мониторинга
	session := protected.Group("/session")
	{
		session.POST("/start", h.startSession)
		session.POST("/stop", h.stopSession)
		session.GET("/status", h.getStatus)
		session.POST("/check", h.checkNow)
	}

	// Зоны риска для отрисовки на карте
	protected.GET("/zones", h.getZones)

	// Сообщения об инцидентах и регистрация устройств
	protected.POST("/reports", h.createReport)
	protected.POST("/devices", h.registerDevice)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
