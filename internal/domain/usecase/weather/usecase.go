package weather

import (
	"context"

	"weather-api/internal/domain/model"
)

// UseCase is the weather lookup orchestrator: cache first, upstream on
// miss, best-effort write-back and audit.
type UseCase interface {
	GetWeather(ctx context.Context, city string) (model.WeatherRecord, error)
}
