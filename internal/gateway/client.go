package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shenikar/saferoute_monitor/internal/config"
	"github.com/shenikar/saferoute_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

// Client - HTTP-клиент сервиса оценки рисков.
// Повторяет запрос при сетевых сбоях и консервативно заполняет
// отсутствующие поля ответа (нет категории -> D, нет оценки -> 0):
// потеря ответа никогда не повышает классификацию.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *logrus.Logger
	maxRetries   int
	retryBackoff time.Duration
}

// NewClient создает новый клиент сервиса рисков
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:      cfg.RiskAPIBaseURL,
		logger:       logger,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// pointRiskResponse - ответ точечного запроса. Поля-указатели, чтобы
// отличать отсутствующее значение от нулевого.
type pointRiskResponse struct {
	RiskCategory *string  `json:"risk_category"`
	RiskScore    *float64 `json:"risk_score"`
}

type areaRiskResponse struct {
	RiskAreas []struct {
		Center struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"center"`
		Radius    float64 `json:"radius"`
		RiskLevel string  `json:"riskLevel"`
	} `json:"risk_areas"`
}

type reportResponse struct {
	RiskArea pointRiskResponse `json:"risk_area"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// QueryPointRisk выполняет точечный запрос риска для координаты
func (c *Client) QueryPointRisk(ctx context.Context, coord models.Coordinate, radiusKm float64) (models.RiskAssessment, error) {
	requestURL := c.riskURL(coord, radiusKm)

	body, err := c.doWithRetries(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return models.RiskAssessment{}, err
	}

	var resp pointRiskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.RiskAssessment{}, fmt.Errorf("gateway: failed to decode point risk response: %w", err)
	}

	return assessmentFromResponse(resp), nil
}

// QueryAreaRiskZones запрашивает набор зон риска вокруг центра.
// Возвращаемый набор целиком заменяет предыдущий у вызывающего.
func (c *Client) QueryAreaRiskZones(ctx context.Context, center models.Coordinate, radiusKm float64) ([]models.RiskZone, error) {
	requestURL := c.riskURL(center, radiusKm)

	body, err := c.doWithRetries(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var resp areaRiskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gateway: failed to decode risk zones response: %w", err)
	}

	zones := make([]models.RiskZone, 0, len(resp.RiskAreas))
	for _, area := range resp.RiskAreas {
		level := models.RiskLevel(area.RiskLevel)
		if !level.IsValid() {
			level = models.DefaultRiskLevel
		}
		zones = append(zones, models.RiskZone{
			Center: models.Coordinate{
				Latitude:  area.Center.Latitude,
				Longitude: area.Center.Longitude,
			},
			RadiusKm: area.Radius,
			Level:    level,
		})
	}
	return zones, nil
}

// SubmitReport отправляет сообщение об инциденте и возвращает оценку риска,
// которую сервис присвоил новой зоне
func (c *Client) SubmitReport(ctx context.Context, report models.CrimeReport) (models.RiskAssessment, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("gateway: failed to marshal crime report: %w", err)
	}

	requestURL := c.baseURL + "/report-crime/"
	body, err := c.doWithRetries(ctx, http.MethodPost, requestURL, payload)
	if err != nil {
		return models.RiskAssessment{}, err
	}

	var resp reportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.RiskAssessment{}, fmt.Errorf("gateway: failed to decode report response: %w", err)
	}
	return assessmentFromResponse(resp.RiskArea), nil
}

func (c *Client) riskURL(coord models.Coordinate, radiusKm float64) string {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", coord.Latitude))
	params.Set("lon", fmt.Sprintf("%.6f", coord.Longitude))
	params.Set("radius", fmt.Sprintf("%g", radiusKm))
	return fmt.Sprintf("%s/risk/?%s", c.baseURL, params.Encode())
}

// doWithRetries выполняет запрос с ограниченным числом повторов.
// Повторяются только сетевые сбои и таймауты; ответ с кодом вне 2xx
// сразу поднимается как ошибка (явный цикл вместо рекурсии, чтобы
// семантика отмены оставалась прозрачной).
func (c *Client) doWithRetries(ctx context.Context, method, requestURL string, payload []byte) ([]byte, error) {
	log := c.logger.WithFields(logrus.Fields{
		"component": "gateway",
		"url":       requestURL,
	})

	attempts := c.maxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("gateway: request cancelled: %w", ctx.Err())
			case <-time.After(c.retryBackoff):
			}
		}

		var reqBody *bytes.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		} else {
			reqBody = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("gateway: failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warnf("Risk service request failed. Retries left: %d", attempts-1-attempt)
			continue
		}

		body, status, err := readBody(resp)
		if err != nil {
			lastErr = err
			log.WithError(err).Warnf("Failed to read risk service response. Retries left: %d", attempts-1-attempt)
			continue
		}

		if status < 200 || status >= 300 {
			var structured errorResponse
			if json.Unmarshal(body, &structured) == nil && structured.Error != "" {
				return nil, fmt.Errorf("gateway: %s", structured.Error)
			}
			return nil, fmt.Errorf("gateway: server returned status %d", status)
		}

		return body, nil
	}

	return nil, fmt.Errorf("gateway: request failed after %d attempts: %w", attempts, lastErr)
}

func readBody(resp *http.Response) ([]byte, int, error) {
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, 0, fmt.Errorf("gateway: failed to read response body: %w", err)
	}
	return buf.Bytes(), resp.StatusCode, nil
}

// assessmentFromResponse применяет консервативные значения по умолчанию
// и нормализует оценку к диапазону 0..1 (сервис исторически возвращал 0..10)
func assessmentFromResponse(resp pointRiskResponse) models.RiskAssessment {
	level := models.DefaultRiskLevel
	if resp.RiskCategory != nil {
		if parsed := models.RiskLevel(*resp.RiskCategory); parsed.IsValid() {
			level = parsed
		}
	}

	score := 0.0
	if resp.RiskScore != nil {
		score = *resp.RiskScore
	}
	if score > 1 {
		score = score / 10
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	return models.RiskAssessment{
		Level: level,
		Score: score,
	}
}
