package screen

import (
	"context"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
)

type fetchResult struct {
	raw *external.CurrentWeatherResponse
	err error
}

type fetchCall struct {
	ctx   context.Context
	city  entity.City
	reply chan fetchResult
}

// scriptedGateway hands every call to the test, which decides when and how it completes.
// With ignoreCancel set, calls wait for a reply even after cancellation so late replies can be simulated.
type scriptedGateway struct {
	calls        chan fetchCall
	ignoreCancel bool
}

func newScriptedGateway() *scriptedGateway {
	return &scriptedGateway{calls: make(chan fetchCall, 16)}
}

func (g *scriptedGateway) GetWeatherData(ctx context.Context, city entity.City) (*external.CurrentWeatherResponse, error) {
	call := fetchCall{ctx: ctx, city: city, reply: make(chan fetchResult, 1)}
	g.calls <- call

	if g.ignoreCancel {
		result := <-call.reply
		return result.raw, result.err
	}
	select {
	case result := <-call.reply:
		return result.raw, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *scriptedGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUnknown}
}

func rawResponse(temp float64, humidity int, text string, code int, localTime string, pressure float64, wind float64, isDay int) *external.CurrentWeatherResponse {
	return &external.CurrentWeatherResponse{
		Location: external.LocationDTO{Name: "Test", LocalTime: localTime},
		Current: external.CurrentWeatherDTO{
			TempC:      temp,
			IsDay:      isDay,
			Condition:  external.ConditionDTO{Text: text, Code: code},
			WindKph:    wind,
			PressureMb: pressure,
			Humidity:   humidity,
		},
	}
}
