package screen

import (
	"context"
	"errors"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
)

var (
	ErrUnknownCity = errors.New("unknown city")
	ErrClosed      = errors.New("screen is closed")
)

// FallbackErrorMessage is shown when a failure carries no description and the message catalog has none either
const FallbackErrorMessage = "Ошибка"

type UseCase interface {
	// Start fetches the default city and ties the screen's lifetime to ctx; later calls are no-ops
	Start(ctx context.Context)

	// SelectCity switches to city, supersedes any in-flight fetch and returns the Loading state
	SelectCity(city entity.City) (model.ViewState, error)

	// State returns a snapshot of the current view state
	State() model.ViewState

	// SelectedCity returns the city of the most recent selection
	SelectedCity() entity.City

	// Cities returns the picker's cities in display order
	Cities() []entity.City

	// Subscribe delivers every subsequent state change until the returned func is called
	Subscribe() (<-chan model.ViewState, func())

	// Close cancels the in-flight fetch and closes all subscriptions
	Close()
}
