package audit

import (
	"context"

	"weather-api/internal/domain/model"
)

// AuditGateway writes one append-only event per weather lookup. Events
// are write-only from this service's point of view; nothing reads them
// back.
type AuditGateway interface {
	Record(ctx context.Context, city string, storagePath string, record model.WeatherRecord) (eventID string, err error)
	Ping(ctx context.Context) error
}
