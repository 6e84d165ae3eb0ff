package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
	pkghttp "weather-screen/pkg/http"
)

const testAPIKey = "test-key"

func successResponse() external.CurrentWeatherResponse {
	return external.CurrentWeatherResponse{
		Location: external.LocationDTO{
			Name:      "Тольятти",
			Country:   "Россия",
			TzID:      "Europe/Samara",
			LocalTime: "2024-05-01 14:00",
		},
		Current: external.CurrentWeatherDTO{
			TempC:      21.5,
			IsDay:      1,
			Condition:  external.ConditionDTO{Text: "Ясно", Code: 1000},
			WindKph:    3.2,
			PressureMb: 760.0,
			Humidity:   60,
		},
	}
}

func newTestGateway(baseURL string) WeatherGateway {
	return NewWeatherGateway(baseURL, testAPIKey, "ru", pkghttp.ClientOptions{ReadTimeout: 5 * time.Second})
}

func TestGetWeatherDataSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/current.json" {
			t.Errorf("expected path /current.json, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "Тольятти" {
			t.Errorf("expected q=Тольятти, got %s", got)
		}
		if got := q.Get("key"); got != testAPIKey {
			t.Errorf("expected key=%s, got %s", testAPIKey, got)
		}
		if got := q.Get("lang"); got != "ru" {
			t.Errorf("expected lang=ru, got %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successResponse())
	}))
	defer srv.Close()

	gateway := newTestGateway(srv.URL)
	got, err := gateway.GetWeatherData(context.Background(), "Тольятти")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *got != successResponse() {
		t.Errorf("expected %+v, got %+v", successResponse(), *got)
	}
	if health := gateway.Health(); health.Status != model.StatusUp {
		t.Errorf("expected UP after a successful call, got %s", health.Status)
	}
}

func TestGetWeatherDataProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer srv.Close()

	gateway := newTestGateway(srv.URL)
	_, err := gateway.GetWeatherData(context.Background(), "Атлантида")

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected *GatewayError, got %v", err)
	}
	if gatewayErr.Kind != KindProtocol {
		t.Errorf("expected PROTOCOL, got %s", gatewayErr.Kind)
	}
	if gatewayErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", gatewayErr.Status)
	}
	if err.Error() != "No matching location found." {
		t.Errorf("expected provider message, got %q", err.Error())
	}
	if health := gateway.Health(); health.Status != model.StatusDown {
		t.Errorf("expected DOWN after a failed call, got %s", health.Status)
	}
}

func TestGetWeatherDataServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).GetWeatherData(context.Background(), "Москва")

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) || gatewayErr.Kind != KindProtocol {
		t.Fatalf("expected PROTOCOL error, got %v", err)
	}
	if err.Error() != "http error: status 502" {
		t.Errorf("expected status description, got %q", err.Error())
	}
}

func TestGetWeatherDataMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current": {"temp_c": "warm"`))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).GetWeatherData(context.Background(), "Москва")

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) || gatewayErr.Kind != KindProtocol {
		t.Fatalf("expected PROTOCOL error, got %v", err)
	}
	if !errors.Is(err, pkghttp.ErrDecode) {
		t.Errorf("expected ErrDecode in chain, got %v", err)
	}
	if err.Error() == "" {
		t.Error("expected a descriptive message")
	}
}

func TestGetWeatherDataNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	gateway := newTestGateway(baseURL)
	_, err := gateway.GetWeatherData(context.Background(), "Москва")

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected *GatewayError, got %v", err)
	}
	if gatewayErr.Kind != KindNetwork {
		t.Errorf("expected NETWORK, got %s", gatewayErr.Kind)
	}
	if err.Error() == "" {
		t.Error("expected the transport error description")
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Errorf("expected the API key to be hidden, got %q", err.Error())
	}

	health := gateway.Health()
	if health.Status != model.StatusDown {
		t.Errorf("expected DOWN, got %s", health.Status)
	}
	if strings.Contains(health.Details["error"], testAPIKey) {
		t.Errorf("expected the API key to be hidden from health, got %q", health.Details["error"])
	}
}

func TestGetWeatherDataCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gateway := newTestGateway(srv.URL)
	_, err := gateway.GetWeatherData(ctx, "Москва")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if health := gateway.Health(); health.Status != model.StatusUnknown {
		t.Errorf("expected canceled calls not to affect health, got %s", health.Status)
	}
}

func TestGetWeatherDataRequiresCity(t *testing.T) {
	_, err := newTestGateway("http://127.0.0.1:1").GetWeatherData(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty city")
	}
}

func TestHealthBeforeAnyCall(t *testing.T) {
	health := NewWeatherGateway("http://127.0.0.1:1", "", "", pkghttp.ClientOptions{}).Health()
	if health.Status != model.StatusUnknown {
		t.Errorf("expected UNKNOWN, got %s", health.Status)
	}
	if health.Details["apiKeyConfigured"] != "false" {
		t.Errorf("expected apiKeyConfigured=false, got %s", health.Details["apiKeyConfigured"])
	}
}
