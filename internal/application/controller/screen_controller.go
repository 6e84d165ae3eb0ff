package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"weather-screen/internal/application/view"
	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/usecase/screen"
	"weather-screen/pkg/msg"
)

type ScreenController struct {
	api      *echo.Group
	basePath string
	useCase  screen.UseCase
	labels   view.Labels
}

func NewScreenController(api *echo.Group, basePath string, useCase screen.UseCase) *ScreenController {
	return &ScreenController{
		api:      api,
		basePath: strings.TrimRight(basePath, "/"),
		useCase:  useCase,
		labels:   view.LoadLabels(),
	}
}

// InitScreenRoutes initializes screen routes
func (controller *ScreenController) InitScreenRoutes() {
	controller.api.GET("", controller.RenderScreen)
	controller.api.GET("/", controller.RenderScreen)
	controller.api.POST("/", controller.SubmitCity)
	controller.api.GET("/screen", controller.GetState)
	controller.api.PUT("/screen/city", controller.SelectCity)
	controller.api.GET("/cities", controller.GetCities)
}

// GetState godoc
// @Summary Get the screen state
// @Description Returns the current view state: LOADING, ERROR with a message, or LOADED with weather data
// @Tags screen
// @Produce json
// @Success 200 {object} model.ViewState "Current view state"
// @Router /screen [get]
func (controller *ScreenController) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.State())
}

// SelectCity godoc
// @Summary Select a city
// @Description Switches the screen to a city from the fixed list and starts fetching its weather
// @Tags screen
// @Accept json
// @Produce json
// @Param city body model.SelectCityDTO true "City to show"
// @Success 202 {object} model.ViewState "Loading state of the new fetch"
// @Failure 400 {object} map[string]string "Invalid body or unknown city"
// @Failure 503 {object} map[string]string "Screen is shutting down"
// @Router /screen/city [put]
func (controller *ScreenController) SelectCity(c echo.Context) error {
	var dto model.SelectCityDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	state, err := controller.selectCity(dto.City)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, state)
}

// GetCities godoc
// @Summary List cities
// @Description Returns the fixed list of cities and the current selection
// @Tags screen
// @Produce json
// @Success 200 {object} model.CitiesResponse "Cities"
// @Router /cities [get]
func (controller *ScreenController) GetCities(c echo.Context) error {
	return c.JSON(http.StatusOK, model.CitiesResponse{
		Selected: controller.useCase.SelectedCity(),
		Cities:   controller.useCase.Cities(),
	})
}

// RenderScreen renders the HTML screen for the current state
func (controller *ScreenController) RenderScreen(c echo.Context) error {
	return c.Render(http.StatusOK, view.ScreenTemplate, controller.page())
}

// SubmitCity handles the picker form and redirects back to the screen
func (controller *ScreenController) SubmitCity(c echo.Context) error {
	if _, err := controller.selectCity(c.FormValue("city")); err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.Redirect(http.StatusSeeOther, controller.basePath+"/")
}

func (controller *ScreenController) selectCity(name string) (model.ViewState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ViewState{}, errCityRequired
	}
	return controller.useCase.SelectCity(entity.City(name))
}

func (controller *ScreenController) page() view.ScreenPage {
	return view.ScreenPage{
		State:      controller.useCase.State(),
		Cities:     controller.useCase.Cities(),
		Selected:   controller.useCase.SelectedCity(),
		Labels:     controller.labels,
		BasePath:   controller.basePath,
		StreamPath: controller.basePath + "/screen/stream",
	}
}

var errCityRequired = errors.New(msg.GetMessageOrDefault("screen.city.required", "city is required"))

func statusFor(err error) int {
	switch {
	case errors.Is(err, errCityRequired), errors.Is(err, screen.ErrUnknownCity):
		return http.StatusBadRequest
	case errors.Is(err, screen.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
