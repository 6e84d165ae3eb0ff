package api

import (
	"context"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
)

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// GetWeatherData fetches current conditions for a city.
	// Errors are *GatewayError values classified as network, protocol or unknown failures.
	GetWeatherData(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error)

	// Health reports the outcome of the most recent call without contacting the API
	Health() model.ComponentHealthStatus
}
