package api

import (
	"context"

	"weather-api/internal/domain/model"
)

// WeatherGateway fetches current weather for a city from the upstream API.
type WeatherGateway interface {
	FetchWeather(ctx context.Context, city string) (model.WeatherRecord, error)
}
