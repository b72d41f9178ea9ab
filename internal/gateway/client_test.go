package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient - вспомогательная функция для создания клиента, указывающего на тестовый сервер
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		RiskAPIBaseURL: serverURL,
		RequestTimeout: 2 * time.Second,
		MaxRetries:     2,
		RetryBackoff:   10 * time.Millisecond,
	}
	return NewClient(cfg, logger)
}

func TestQueryPointRisk_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/risk/", r.URL.Path)
		assert.Equal(t, "32.505000", r.URL.Query().Get("lat"))
		assert.Equal(t, "0.1", r.URL.Query().Get("radius"))
		w.Write([]byte(`{"risk_category": "B", "risk_score": 0.63}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assessment, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 32.505, Longitude: -92.1239}, 0.1)

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelB, assessment.Level)
	assert.InDelta(t, 0.63, assessment.Score, 1e-9)
}

func TestQueryPointRisk_MissingFieldsDefaultConservatively(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Нет risk_category и risk_score
		w.Write([]byte(`{"message": "no data"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assessment, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, 0.1)

	require.NoError(t, err)
	// Отсутствие классификации никогда не трактуется как A/B
	assert.Equal(t, models.RiskLevelD, assessment.Level)
	assert.Zero(t, assessment.Score)
}

func TestQueryPointRisk_NormalizesLegacyScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Старый формат сервиса: оценка в диапазоне 0..10
		w.Write([]byte(`{"risk_category": "A", "risk_score": 8.2}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assessment, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, 0.1)

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelA, assessment.Level)
	assert.InDelta(t, 0.82, assessment.Score, 1e-9)
}

func TestQueryPointRisk_StructuredErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Please provide 'lat' and 'lon' query parameters."}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.QueryPointRisk(context.Background(), models.Coordinate{}, 0.1)

	require.Error(t, err)
	assert.ErrorContains(t, err, "Please provide 'lat' and 'lon'")
}

func TestQueryPointRisk_GenericServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, 0.1)

	require.Error(t, err)
	assert.ErrorContains(t, err, "server returned status 500")
}

func TestQueryAreaRiskZones_ReplacesWholeSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"risk_areas": [
				{"center": {"latitude": 32.505, "longitude": -92.1239}, "radius": 0.2, "riskLevel": "A"},
				{"center": {"latitude": 32.5285, "longitude": -92.0739}, "radius": 0.2, "riskLevel": "C"},
				{"center": {"latitude": 32.53, "longitude": -92.07}, "radius": 0.1, "riskLevel": "unknown"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	zones, err := client.QueryAreaRiskZones(context.Background(), models.Coordinate{Latitude: 32.5, Longitude: -92.1}, 1.0)

	require.NoError(t, err)
	require.Len(t, zones, 3)
	assert.Equal(t, models.RiskLevelA, zones[0].Level)
	assert.Equal(t, 0.2, zones[0].RadiusKm)
	assert.Equal(t, models.RiskLevelC, zones[1].Level)
	// Невалидный уровень заменяется безопасным значением по умолчанию
	assert.Equal(t, models.RiskLevelD, zones[2].Level)
}

func TestDoWithRetries_TransportFailureThenSuccess(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Обрываем соединение, имитируя сетевой сбой
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(`{"risk_category": "D", "risk_score": 0.1}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assessment, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, 0.1)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, models.RiskLevelD, assessment.Level)
}

func TestDoWithRetries_ExhaustsAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		conn.Close()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.QueryPointRisk(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, 0.1)

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 3 attempts")
}

func TestSubmitReport_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/report-crime/", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"risk_area": {"risk_category": "B", "risk_score": 6.3}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	report := models.CrimeReport{
		Latitude:    32.505,
		Longitude:   -92.1239,
		Description: "robbery: wallet stolen",
		ReportedAt:  time.Now().UTC(),
		Severity:    4,
	}

	assessment, err := client.SubmitReport(context.Background(), report)

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelB, assessment.Level)
	assert.InDelta(t, 0.63, assessment.Score, 1e-9)
}
