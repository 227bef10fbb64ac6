package health

import (
	"context"

	"weather-api/internal/domain/model"
)

// UseCase probes the service's backends and reports component health.
type UseCase interface {
	CheckHealth(ctx context.Context) model.HealthResponse
}
