package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"weather-screen/internal/application/view"
	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
	"weather-screen/internal/domain/usecase/screen"
)

const basePath = "/weather-screen"

type stubGateway struct {
	fetch func(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error)
}

func (g *stubGateway) GetWeatherData(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	return g.fetch(ctx, city)
}

func (g *stubGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUnknown}
}

func sunny(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	return &external.CurrentWeatherResponse{
		Location: external.LocationDTO{Name: city.String(), LocalTime: "2024-05-01 14:30"},
		Current: external.CurrentWeatherDTO{
			TempC:      21.5,
			IsDay:      1,
			Condition:  external.ConditionDTO{Text: "Ясно", Code: 1000},
			WindKph:    12.2,
			PressureMb: 1013,
			Humidity:   40,
		},
	}, nil
}

func unreachable(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	return nil, errors.New("host unreachable")
}

func hanging(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func setupScreen(t *testing.T, fetch func(context.Context, entity.City) (*external.CurrentWeatherResponse, error)) (*echo.Echo, screen.UseCase) {
	t.Helper()

	useCase, err := screen.NewScreenUseCase(&stubGateway{fetch: fetch}, screen.Config{
		Cities:      []string{"Тольятти", "Москва", "Владивосток"},
		DefaultCity: "Тольятти",
	})
	if err != nil {
		t.Fatalf("failed to create screen: %v", err)
	}
	t.Cleanup(useCase.Close)

	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	NewScreenController(e.Group(basePath), basePath, useCase).InitScreenRoutes()
	return e, useCase
}

func serve(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func waitFor(t *testing.T, useCase screen.UseCase, done func(model.ViewState) bool) model.ViewState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := useCase.State(); done(state) {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state did not settle, last: %+v", useCase.State())
	return model.ViewState{}
}

func TestGetStateReturnsInitialLoading(t *testing.T) {
	e, _ := setupScreen(t, hanging)

	rec := serve(e, http.MethodGet, basePath+"/screen", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state model.ViewState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if state.Kind != model.KindLoading || state.City != "Тольятти" {
		t.Errorf("expected Loading for Тольятти, got %+v", state)
	}
}

func TestSelectCityAcceptsKnownCity(t *testing.T) {
	e, useCase := setupScreen(t, sunny)

	rec := serve(e, http.MethodPut, basePath+"/screen/city", echo.MIMEApplicationJSON, `{"city":"Москва"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var state model.ViewState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if state.Kind != model.KindLoading || state.City != "Москва" || state.FetchID == "" {
		t.Errorf("expected Loading for Москва with a fetch id, got %+v", state)
	}

	loaded := waitFor(t, useCase, model.ViewState.IsLoaded)
	if loaded.Data.Temperature != 21.5 || loaded.City != "Москва" {
		t.Errorf("unexpected loaded state %+v", loaded)
	}
}

func TestSelectCityRejectsInvalidInput(t *testing.T) {
	e, useCase := setupScreen(t, hanging)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{"city":`},
		{name: "empty city", body: `{"city":"  "}`},
		{name: "unknown city", body: `{"city":"Париж"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodPut, basePath+"/screen/city", echo.MIMEApplicationJSON, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("expected error body, got %s", rec.Body.String())
			}
		})
	}

	if got := useCase.SelectedCity(); got != "Тольятти" {
		t.Errorf("expected selection untouched, got %s", got)
	}
}

func TestSelectCityAfterCloseIsUnavailable(t *testing.T) {
	e, useCase := setupScreen(t, hanging)
	useCase.Close()

	rec := serve(e, http.MethodPut, basePath+"/screen/city", echo.MIMEApplicationJSON, `{"city":"Москва"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestGetCities(t *testing.T) {
	e, _ := setupScreen(t, hanging)

	rec := serve(e, http.MethodGet, basePath+"/cities", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response model.CitiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if response.Selected != "Тольятти" || len(response.Cities) != 3 || response.Cities[2] != "Владивосток" {
		t.Errorf("unexpected cities response %+v", response)
	}
}

func TestRenderScreenShowsOneSection(t *testing.T) {
	tests := []struct {
		name    string
		fetch   func(context.Context, entity.City) (*external.CurrentWeatherResponse, error)
		settled func(model.ViewState) bool
		want    string
		absent  []string
	}{
		{name: "loading", fetch: hanging, settled: model.ViewState.IsLoading, want: `id="loading"`, absent: []string{`id="error"`, `id="weather"`}},
		{name: "error", fetch: unreachable, settled: model.ViewState.IsError, want: "host unreachable", absent: []string{`id="loading"`, `id="weather"`}},
		{name: "loaded", fetch: sunny, settled: model.ViewState.IsLoaded, want: "Ясно", absent: []string{`id="loading"`, `id="error"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, useCase := setupScreen(t, tt.fetch)
			useCase.Start(context.Background())
			waitFor(t, useCase, tt.settled)

			rec := serve(e, http.MethodGet, basePath+"/", "", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.want) {
				t.Errorf("expected page to contain %q", tt.want)
			}
			for _, section := range tt.absent {
				if strings.Contains(body, section) {
					t.Errorf("expected page without %q", section)
				}
			}
		})
	}
}

func TestSubmitCityRedirectsToScreen(t *testing.T) {
	e, useCase := setupScreen(t, hanging)

	form := url.Values{"city": {"Владивосток"}}.Encode()
	rec := serve(e, http.MethodPost, basePath+"/", echo.MIMEApplicationForm, form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if location := rec.Header().Get(echo.HeaderLocation); location != basePath+"/" {
		t.Errorf("unexpected redirect %s", location)
	}
	if got := useCase.SelectedCity(); got != "Владивосток" {
		t.Errorf("expected Владивосток selected, got %s", got)
	}
}
