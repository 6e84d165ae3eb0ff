package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"weather-screen/internal/domain/model"
)

type stubHealth struct {
	response model.HealthResponse
}

func (s stubHealth) CheckHealth() model.HealthResponse {
	return s.response
}

func TestCheckHealthStatusCodes(t *testing.T) {
	tests := []struct {
		status model.HealthStatus
		want   int
	}{
		{status: model.StatusUp, want: http.StatusOK},
		{status: model.StatusUnknown, want: http.StatusOK},
		{status: model.StatusDown, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := echo.New()
			NewHealthController(e.Group(basePath), stubHealth{response: model.HealthResponse{Status: tt.status}}).InitHealthRoutes()

			rec := serve(e, http.MethodGet, basePath+"/health", "", "")
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}

			var response model.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if response.Status != tt.status {
				t.Errorf("expected %s, got %s", tt.status, response.Status)
			}
		})
	}
}
