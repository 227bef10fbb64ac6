package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/usecase/weather"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.GetWeather)
}

// weatherQuery carries the validated city query parameter: 2-50
// characters, letters (including accented), spaces and hyphens only.
type weatherQuery struct {
	City string `query:"city" validate:"required,min=2,max=50,cityname"`
}

// GetWeather serves one weather lookup for the requested city.
func (controller *WeatherController) GetWeather(c echo.Context) error {
	var query weatherQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&query); err != nil {
		return err
	}

	record, err := controller.useCase.GetWeather(c.Request().Context(), query.City)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
