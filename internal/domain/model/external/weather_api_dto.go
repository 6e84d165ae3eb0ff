package external

// CurrentWeatherResponse represents the response from the current conditions API
type CurrentWeatherResponse struct {
	Location LocationDTO       `json:"location"`
	Current  CurrentWeatherDTO `json:"current"`
}

// LocationDTO represents the resolved location of a query
type LocationDTO struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocalTimeEpoch int64   `json:"localtime_epoch"`
	LocalTime      string  `json:"localtime"`
}

// CurrentWeatherDTO represents current conditions at the location
type CurrentWeatherDTO struct {
	LastUpdated string       `json:"last_updated"`
	TempC       float64      `json:"temp_c"`
	IsDay       int          `json:"is_day"`
	Condition   ConditionDTO `json:"condition"`
	WindKph     float64      `json:"wind_kph"`
	WindDir     string       `json:"wind_dir"`
	PressureMb  float64      `json:"pressure_mb"`
	Humidity    int          `json:"humidity"`
	Cloud       int          `json:"cloud"`
	FeelsLikeC  float64      `json:"feelslike_c"`
}

// ConditionDTO represents the textual and coded weather condition
type ConditionDTO struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// APIErrorResponse represents error responses from the weather API
type APIErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError carries the provider's error code and description
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
