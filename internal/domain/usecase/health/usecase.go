package health

import "weather-screen/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
