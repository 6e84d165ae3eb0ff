package health

import (
	"weather-screen/internal/domain/gateway/api"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/usecase/screen"
)

type healthUseCase struct {
	apiGateway api.WeatherGateway
	screen     screen.UseCase
}

func NewHealthUseCase(apiGateway api.WeatherGateway, screen screen.UseCase) UseCase {
	return &healthUseCase{
		apiGateway: apiGateway,
		screen:     screen,
	}
}

// CheckHealth reports DOWN only when the last weather API call failed; a screen in the
// error state is still a live screen.
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	apiHealth := useCase.apiGateway.Health()
	state := useCase.screen.State()

	screenHealth := model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"state": string(state.Kind),
			"city":  state.City.String(),
		},
	}
	if state.IsError() {
		screenHealth.Details["message"] = state.Message
	}

	overallStatus := model.StatusUp
	if apiHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:     overallStatus,
		WeatherAPI: apiHealth,
		Screen:     screenHealth,
	}
}
