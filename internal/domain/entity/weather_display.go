package entity

// IconID references an entry in the presentation layer's icon catalog.
type IconID string

// WeatherDisplay is the UI-ready snapshot of current conditions.
// Numeric values keep the units the weather API reports them in.
type WeatherDisplay struct {
	Temperature   float64 `json:"temperature"`
	Humidity      int     `json:"humidity"`
	Condition     string  `json:"condition"`
	LocalTime     string  `json:"localTime"`
	AirPressure   float64 `json:"airPressure"`
	WindSpeed     float64 `json:"windSpeed"`
	ConditionIcon IconID  `json:"conditionIcon"`
}
