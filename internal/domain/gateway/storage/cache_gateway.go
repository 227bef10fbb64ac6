package storage

import (
	"context"

	"weather-api/internal/domain/model"
)

// CacheGateway stores and retrieves cached weather documents.
//
// GetFresh returns a nil record when the cache has no usable entry; a
// non-nil error means the cache is unusable for this request, which is
// a different condition than "cache empty".
type CacheGateway interface {
	Put(ctx context.Context, city string, record model.WeatherRecord) (key string, uri string, err error)
	GetFresh(ctx context.Context, city string) (record model.WeatherRecord, uri string, err error)
	Ping(ctx context.Context) error
}
