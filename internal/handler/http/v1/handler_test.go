package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/shenikar/saferoute_monitor/internal/monitor"
	"github.com/shenikar/saferoute_monitor/internal/monitor/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStartSession_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sessionID := uuid.New()
	reqBody := StartSessionRequest{
		DeviceID:  "dev-1",
		Latitude:  32.5,
		Longitude: 32.0,
	}
	snapshot := &monitor.StatusSnapshot{
		SessionID: sessionID,
		DeviceID:  "dev-1",
		Phase:     monitor.PhaseUninitialized,
		Level:     models.RiskLevelUnknown,
		StartedAt: time.Now(),
	}

	mockService.EXPECT().
		StartSession(gomock.Any(), "dev-1", models.Coordinate{Latitude: 32.5, Longitude: 32.0}).
		Return(snapshot, nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, sessionID, resp.SessionID)
	assert.Equal(t, "dev-1", resp.DeviceID)
	assert.Equal(t, "uninitialized", resp.Phase)
}

func TestStartSession_Conflict(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := StartSessionRequest{
		DeviceID:  "dev-1",
		Latitude:  32.5,
		Longitude: 32.0,
	}

	mockService.EXPECT().
		StartSession(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, monitor.ErrSessionActive).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already active")
}

func TestStartSession_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := StartSessionRequest{ // Отсутствует DeviceID
		Latitude:  32.5,
		Longitude: 32.0,
	}

	mockService.EXPECT().StartSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'DeviceID' failed on the 'required' tag")
}

func TestStartSession_ZeroCoordinatesAccepted(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	// Экватор и нулевой меридиан - легальная стартовая точка
	reqBody := StartSessionRequest{
		DeviceID:  "dev-1",
		Latitude:  0,
		Longitude: 0,
	}
	snapshot := &monitor.StatusSnapshot{
		SessionID: uuid.New(),
		DeviceID:  "dev-1",
		Phase:     monitor.PhaseUninitialized,
	}

	mockService.EXPECT().
		StartSession(gomock.Any(), "dev-1", models.Coordinate{Latitude: 0, Longitude: 0}).
		Return(snapshot, nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStartSession_OutOfRangeCoordinates(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := StartSessionRequest{
		DeviceID:  "dev-1",
		Latitude:  95,
		Longitude: 32.0,
	}

	mockService.EXPECT().StartSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Latitude' failed on the 'latitude' tag")
}

func TestStartSession_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().StartSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/session/start", bytes.NewBufferString(`{"device_id": "dev-1"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestStopSession_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().StopSession(gomock.Any()).Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/session/stop", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStopSession_NoSession(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().StopSession(gomock.Any()).Return(monitor.ErrNoSession).Times(1)

	w := makeRequest(router, "POST", "/api/v1/session/stop", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no active monitoring session")
}

func TestGetStatus_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	dist := 42.5
	snapshot := &monitor.StatusSnapshot{
		SessionID: uuid.New(),
		DeviceID:  "dev-1",
		Phase:     monitor.PhaseSettled,
		Level:     models.RiskLevelB,
		Assessment: models.RiskAssessment{
			Level:          models.RiskLevelB,
			Score:          0.625,
			DistanceMeters: &dist,
		},
		ZoneCount:   3,
		Evaluations: 5,
	}

	mockService.EXPECT().Status(gomock.Any()).Return(snapshot, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/session/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "B", resp.Level)
	assert.Equal(t, "settled", resp.Phase)
	assert.Equal(t, 0.625, resp.Score)
	require.NotNil(t, resp.DistanceMeters)
	assert.Equal(t, dist, *resp.DistanceMeters)
	assert.Equal(t, 3, resp.ZoneCount)
}

func TestGetStatus_NoSession(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Status(gomock.Any()).Return(nil, monitor.ErrNoSession).Times(1)

	w := makeRequest(router, "GET", "/api/v1/session/status", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no active monitoring session")
}

func TestCheckNow_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	result := &monitor.CheckResult{
		Assessment: models.RiskAssessment{Level: models.RiskLevelA, Score: 0.875},
		Advisory: &monitor.Advisory{
			Level:   models.RiskLevelA,
			Message: "High risk area detected. Consider alternative routes",
			Dialog:  true,
			Push:    true,
		},
	}

	mockService.EXPECT().CheckNow(gomock.Any()).Return(result, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/session/check", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CheckResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "A", resp.Level)
	require.NotNil(t, resp.Advisory)
	assert.True(t, resp.Advisory.Dialog)
	assert.True(t, resp.Advisory.Push)
}

func TestCheckNow_EvaluationInFlight(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CheckNow(gomock.Any()).Return(nil, monitor.ErrEvaluationInFlight).Times(1)

	w := makeRequest(router, "POST", "/api/v1/session/check", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already in progress")
}

func TestCheckNow_GatewayError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	serviceError := errors.New("gateway: server returned status 500")

	mockService.EXPECT().CheckNow(gomock.Any()).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "POST", "/api/v1/session/check", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "risk service unavailable")
}

func TestGetZones_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	polygons := []monitor.ZonePolygon{
		{
			Center:   models.Coordinate{Latitude: 32.5, Longitude: 32.0},
			RadiusKm: 0.2,
			Level:    models.RiskLevelA,
			Coordinates: []models.Coordinate{
				{Latitude: 32.5018, Longitude: 32.0},
				{Latitude: 32.5, Longitude: 32.0021},
				{Latitude: 32.4982, Longitude: 32.0},
			},
		},
	}

	mockService.EXPECT().MapZones(gomock.Any(), 16).Return(polygons, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones?segments=16", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ZoneResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "A", resp[0].Level)
	assert.Len(t, resp[0].Coordinates, 3)
}

func TestGetZones_DefaultSegments(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().MapZones(gomock.Any(), 32).Return([]monitor.ZonePolygon{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetZones_NoSession(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().MapZones(gomock.Any(), gomock.Any()).Return(nil, monitor.ErrNoSession).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateReportRequest{
		Latitude:    32.5,
		Longitude:   32.0,
		Description: "Stolen bag near the station",
		Severity:    3,
	}
	assessment := models.RiskAssessment{Level: models.RiskLevelB, Score: 0.6}

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report models.CrimeReport) (models.RiskAssessment, error) {
			assert.Equal(t, reqBody.Description, report.Description)
			assert.Equal(t, reqBody.Severity, report.Severity)
			return assessment, nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "B", resp.Level)
	assert.Equal(t, 0.6, resp.Score)
}

func TestCreateReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateReportRequest{ // Отсутствует Description
		Latitude:  32.5,
		Longitude: 32.0,
	}

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Description' failed on the 'required' tag")
}

func TestCreateReport_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateReportRequest{
		Latitude:    32.5,
		Longitude:   32.0,
		Description: "Stolen bag near the station",
	}
	serviceError := errors.New("failed to submit report")

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Return(models.RiskAssessment{}, serviceError).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "risk service unavailable")
}

func TestRegisterDevice_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := RegisterDeviceRequest{
		DeviceID:  "dev-1",
		PushToken: "ExponentPushToken[abc]",
		Platform:  "android",
	}

	mockService.EXPECT().
		RegisterDevice(gomock.Any(), models.Device{DeviceID: "dev-1", PushToken: "ExponentPushToken[abc]", Platform: "android"}).
		Return(nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/devices", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterDevice_InvalidPlatform(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := RegisterDeviceRequest{
		DeviceID:  "dev-1",
		PushToken: "ExponentPushToken[abc]",
		Platform:  "windows",
	}

	mockService.EXPECT().RegisterDevice(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/devices", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Platform' failed on the 'oneof' tag")
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutes_RequireAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	handler := NewHandler(mockService, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Без ключа защищенный маршрут недоступен
	w := makeRequest(router, "GET", "/api/v1/session/status", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health-check остается открытым
	w = makeRequest(router, "GET", "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// С валидным ключом запрос проходит до сервиса
	mockService.EXPECT().Status(gomock.Any()).Return(nil, monitor.ErrNoSession).Times(1)
	w = makeRequest(router, "GET", "/api/v1/session/status", nil, map[string]string{"X-API-Key": "test-api-key"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
