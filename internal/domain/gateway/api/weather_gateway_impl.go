package api

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
	"weather-screen/pkg/http"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	lang       string

	mu          sync.RWMutex
	lastCallAt  time.Time
	lastErr     error
	lastLatency time.Duration
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, apiKey string, lang string, clientOptions http.ClientOptions) WeatherGateway {
	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
		lang:       lang,
	}
}

// GetWeatherData gets current conditions for a city
func (w *weatherGatewayImpl) GetWeatherData(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	if city == "" {
		return nil, &GatewayError{Kind: KindUnknown, Err: errors.New("city is required")}
	}

	queryParams := map[string]string{
		"key": w.apiKey,
		"q":   city.String(),
		"aqi": "no",
	}
	if w.lang != "" {
		queryParams["lang"] = w.lang
	}

	start := time.Now()
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/current.json").
		WithQueryParams(queryParams).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		gatewayErr := classify(err, status, errResp)
		w.record(start, gatewayErr)
		return nil, gatewayErr
	}

	w.record(start, nil)
	return successResp.(*external.CurrentWeatherResponse), nil
}

// Health reports the outcome of the most recent call
func (w *weatherGatewayImpl) Health() model.ComponentHealthStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	details := map[string]string{
		"apiKeyConfigured": strconv.FormatBool(w.apiKey != ""),
	}

	if w.lastCallAt.IsZero() {
		return model.ComponentHealthStatus{Status: model.StatusUnknown, Details: details}
	}

	details["lastCallAt"] = w.lastCallAt.Format(time.RFC3339)
	details["latency"] = w.lastLatency.String()

	if w.lastErr != nil {
		details["error"] = w.lastErr.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}

func (w *weatherGatewayImpl) record(start time.Time, err error) {
	// A superseded fetch says nothing about the API itself.
	if errors.Is(err, context.Canceled) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastCallAt = start
	w.lastLatency = time.Since(start)
	w.lastErr = err
}
