package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/shenikar/saferoute_monitor/internal/monitor"
	"github.com/sirupsen/logrus"
)

const defaultZoneSegments = 32

type Handler struct {
	monitorService monitor.Service
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
}

func NewHandler(monitorService monitor.Service, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		monitorService: monitorService,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
	}
}

// @Summary Start a monitoring session
// @Description Start a risk monitoring session for a device at the given coordinates. Only one session may be active at a time. Requires API key.
// @Tags Session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body StartSessionRequest true "Session start request"
// @Success 201 {object} StatusResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Session already active"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session/start [post]
func (h *Handler) startSession(c *gin.Context) {
	var input StartSessionRequest
	log := h.logger.WithField("method", "startSession")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := models.Coordinate{Latitude: input.Latitude, Longitude: input.Longitude}
	snapshot, err := h.monitorService.StartSession(c.Request.Context(), input.DeviceID, start)
	if err != nil {
		if errors.Is(err, monitor.ErrSessionActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "monitoring session is already active"})
			return
		}
		log.WithError(err).Error("Failed to start monitoring session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start monitoring session"})
		return
	}

	c.JSON(http.StatusCreated, SnapshotToStatusResponse(snapshot))
}

// @Summary Stop the monitoring session
// @Description Stop the active monitoring session and release the location subscription. Requires API key.
// @Tags Session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active session"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session/stop [post]
func (h *Handler) stopSession(c *gin.Context) {
	log := h.logger.WithField("method", "stopSession")

	if err := h.monitorService.StopSession(c.Request.Context()); err != nil {
		if errors.Is(err, monitor.ErrNoSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active monitoring session"})
			return
		}
		log.WithError(err).Error("Failed to stop monitoring session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop monitoring session"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get session status
// @Description Get a consistent snapshot of the active monitoring session. Requires API key.
// @Tags Session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active session"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	log := h.logger.WithField("method", "getStatus")

	snapshot, err := h.monitorService.Status(c.Request.Context())
	if err != nil {
		if errors.Is(err, monitor.ErrNoSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active monitoring session"})
			return
		}
		log.WithError(err).Error("Failed to get session status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, SnapshotToStatusResponse(snapshot))
}

// @Summary Run a manual risk check
// @Description Force an immediate risk evaluation at the current location, bypassing the movement gate. Rejected if an evaluation is already in progress. Requires API key.
// @Tags Session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CheckResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active session"
// @Failure 409 {object} map[string]string "Evaluation already in progress"
// @Failure 502 {object} map[string]string "Risk service unavailable"
// @Router /session/check [post]
func (h *Handler) checkNow(c *gin.Context) {
	log := h.logger.WithField("method", "checkNow")

	result, err := h.monitorService.CheckNow(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, monitor.ErrNoSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "no active monitoring session"})
		case errors.Is(err, monitor.ErrEvaluationInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "risk evaluation is already in progress"})
		default:
			// Ошибка ручной проверки - это сбой внешнего сервиса рисков
			log.WithError(err).Warn("Manual risk check failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "risk service unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, CheckResultToResponse(result))
}

// @Summary Get risk zones for the map
// @Description Get the current set of risk zones as polygons for map rendering. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param segments query int false "Number of polygon vertices per zone" default(32)
// @Success 200 {array} ZoneResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active session"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [get]
func (h *Handler) getZones(c *gin.Context) {
	log := h.logger.WithField("method", "getZones")
	segments, _ := strconv.Atoi(c.DefaultQuery("segments", strconv.Itoa(defaultZoneSegments)))

	polygons, err := h.monitorService.MapZones(c.Request.Context(), segments)
	if err != nil {
		if errors.Is(err, monitor.ErrNoSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active monitoring session"})
			return
		}
		log.WithError(err).Error("Failed to get risk zones")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, PolygonsToZoneResponses(polygons))
}

// @Summary Report a crime incident
// @Description Submit a crime report to the risk service and return the resulting area assessment. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body CreateReportRequest true "Crime report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Risk service unavailable"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := h.monitorService.SubmitReport(c.Request.Context(), DTOToCrimeReport(input))
	if err != nil {
		log.WithError(err).Error("Failed to submit crime report")
		c.JSON(http.StatusBadGateway, gin.H{"error": "risk service unavailable"})
		return
	}

	c.JSON(http.StatusCreated, AssessmentToReportResponse(assessment))
}

// @Summary Register a device for push notifications
// @Description Register a device push token. Registration grants notification permission for the session. Requires API key.
// @Tags Devices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param device body RegisterDeviceRequest true "Device registration request"
// @Success 201 "Created"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices [post]
func (h *Handler) registerDevice(c *gin.Context) {
	var input RegisterDeviceRequest
	log := h.logger.WithField("method", "registerDevice")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitorService.RegisterDevice(c.Request.Context(), DTOToDevice(input)); err != nil {
		log.WithError(err).Error("Failed to register device")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusCreated)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
