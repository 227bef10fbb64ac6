package api

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"weather-api/configs"
	"weather-api/internal/apperr"
	"weather-api/internal/domain/model"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
)

// openWeatherGateway implements WeatherGateway against the OpenWeather API.
type openWeatherGateway struct {
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewOpenWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewOpenWeatherGateway(cfg *configs.Config) WeatherGateway {
	httpClient := http.NewHttpClient(cfg.OpenWeatherBaseURL, http.ClientOptions{
		ConnectionTimeout: cfg.HTTPTimeout,
		ReadTimeout:       cfg.HTTPTimeout,
	})

	return &openWeatherGateway{
		apiKey:     cfg.OpenWeatherAPIKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// FetchWeather performs a single attempt against the upstream API and
// stamps the fetch timestamp into successful responses.
func (g *openWeatherGateway) FetchWeather(ctx context.Context, city string) (model.WeatherRecord, error) {
	params := map[string]string{
		"q":     city,
		"appid": g.apiKey,
		"units": "metric",
	}

	log.Infof("Fetching weather for %s", city)

	weatherData := model.WeatherRecord{}
	errorData := model.WeatherRecord{}

	_, _, status, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithQueryParams(params).
		WithSuccessResp(&weatherData).
		WithErrorResp(&errorData).
		Execute()

	switch {
	case err != nil && status == 0:
		// Never reached the server: timeout, refused connection, DNS.
		log.Errorf("Network error while fetching weather data: %v", err)
		return nil, apperr.Fetch("Unable to connect to weather service", nethttp.StatusServiceUnavailable, err)
	case err != nil:
		log.Errorf("Unexpected error in weather gateway: %v", err)
		return nil, apperr.Fetch("Internal weather service error", nethttp.StatusInternalServerError, err)
	}

	body := weatherData
	if status >= 400 {
		body = errorData
	}

	// OpenWeather signals a missing city with either HTTP 404 or a
	// 200 whose body carries cod "404".
	if status == nethttp.StatusNotFound || body.Cod() == "404" {
		log.Warnf("City not found: %s", city)
		return nil, apperr.Fetch(fmt.Sprintf("City not found: %s", city), nethttp.StatusNotFound, nil)
	}

	if status != nethttp.StatusOK {
		cause := fmt.Errorf("API error: %d - %v", status, map[string]any(errorData))
		log.Errorf("API error: %d - %v", status, map[string]any(errorData))
		return nil, apperr.Fetch("Weather service temporarily unavailable", nethttp.StatusServiceUnavailable, cause)
	}

	weatherData.StampFetchTime(g.now())

	log.Infof("Successfully fetched weather for %s", city)
	return weatherData, nil
}
