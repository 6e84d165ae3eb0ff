package model

import "weather-screen/internal/domain/entity"

// CitiesResponse lists the picker's cities and the current selection
type CitiesResponse struct {
	Selected entity.City   `json:"selected"`
	Cities   []entity.City `json:"cities"`
}

// SelectCityDTO is the body of a city selection request
type SelectCityDTO struct {
	City string `json:"city" form:"city" validate:"required"`
}
