package screen

import (
	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model/external"
)

// ToDisplay converts a current conditions response into the display model.
// Numbers are copied as reported; only the icon is derived.
func ToDisplay(raw *external.CurrentWeatherResponse) entity.WeatherDisplay {
	current := raw.Current
	return entity.WeatherDisplay{
		Temperature:   current.TempC,
		Humidity:      current.Humidity,
		Condition:     current.Condition.Text,
		LocalTime:     raw.Location.LocalTime,
		AirPressure:   current.PressureMb,
		WindSpeed:     current.WindKph,
		ConditionIcon: ResolveIcon(current.Condition.Text, current.Condition.Code, current.IsDay == 1),
	}
}
