package weather

import (
	"context"

	"weather-api/configs"
	"weather-api/internal/apperr"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/audit"
	"weather-api/internal/domain/gateway/storage"
	"weather-api/internal/domain/model"
	"weather-api/internal/observability"
	"weather-api/pkg/log"
)

// storageFailedPath is recorded in audit events when the write-back
// failed and no real URI exists.
const storageFailedPath = "storage_failed"

// storageDisabledPath is recorded when caching is turned off entirely.
const storageDisabledPath = "storage_disabled"

// cacheMarkerSuffix tags audit events that were served from the cache.
const cacheMarkerSuffix = "#cache"

type weatherUseCase struct {
	apiGateway   api.WeatherGateway
	cacheGateway storage.CacheGateway
	auditGateway audit.AuditGateway
	cacheEnabled bool
	auditEnabled bool
}

func NewWeatherUseCase(cfg *configs.Config, apiGateway api.WeatherGateway, cacheGateway storage.CacheGateway, auditGateway audit.AuditGateway) UseCase {
	return &weatherUseCase{
		apiGateway:   apiGateway,
		cacheGateway: cacheGateway,
		auditGateway: auditGateway,
		cacheEnabled: cfg.CacheEnabled,
		auditEnabled: cfg.AuditEnabled,
	}
}

// GetWeather serves one lookup. Weather data availability dominates
// over cache and audit durability: the only failures surfaced to the
// caller are upstream fetch failures and permission failures, which
// signal a configuration problem worth seeing. Everything else on the
// cache and audit paths is logged and swallowed.
func (uc *weatherUseCase) GetWeather(ctx context.Context, city string) (model.WeatherRecord, error) {
	if uc.cacheEnabled {
		cached, uri, err := uc.cacheGateway.GetFresh(ctx, city)
		switch {
		case err != nil && apperr.IsPermission(err):
			return nil, err
		case err != nil:
			// Cache unusable this request: treat as a soft miss.
			observability.CacheLookupsTotal.WithLabelValues("error").Inc()
			log.Warnf("Cache lookup failed for %s, falling back to upstream: %v", city, err)
		case cached != nil:
			observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
			if err := uc.recordAudit(ctx, city, uri+cacheMarkerSuffix, cached); err != nil {
				return nil, err
			}
			return cached, nil
		default:
			observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	fresh, err := uc.apiGateway.FetchWeather(ctx, city)
	if err != nil {
		observability.UpstreamFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.UpstreamFetchesTotal.WithLabelValues("success").Inc()

	storagePath := storageDisabledPath
	if uc.cacheEnabled {
		storagePath = storageFailedPath
		_, uri, err := uc.cacheGateway.Put(ctx, city, fresh)
		switch {
		case err != nil && apperr.IsPermission(err):
			return nil, err
		case err != nil:
			observability.CacheWritesTotal.WithLabelValues("error").Inc()
			log.Errorf("Failed to persist weather data for %s: %v", city, err)
		default:
			observability.CacheWritesTotal.WithLabelValues("success").Inc()
			storagePath = uri
		}
	}

	if err := uc.recordAudit(ctx, city, storagePath, fresh); err != nil {
		return nil, err
	}

	return fresh, nil
}

// recordAudit writes the lookup event best-effort. Only permission
// failures are returned; everything else is logged and swallowed.
func (uc *weatherUseCase) recordAudit(ctx context.Context, city string, storagePath string, record model.WeatherRecord) error {
	if !uc.auditEnabled {
		observability.AuditWritesTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	eventID, err := uc.auditGateway.Record(ctx, city, storagePath, record)
	if err != nil {
		if apperr.IsPermission(err) {
			return err
		}
		observability.AuditWritesTotal.WithLabelValues("error").Inc()
		log.Warnf("Audit log write failed for %s: %v", city, err)
		return nil
	}

	observability.AuditWritesTotal.WithLabelValues("success").Inc()
	log.Debugf("Recorded audit event %s for %s", eventID, city)
	return nil
}
