package health

import (
	"context"
	"sync"

	"weather-api/internal/domain/gateway/audit"
	"weather-api/internal/domain/gateway/storage"
	"weather-api/internal/domain/model"
)

type healthUseCase struct {
	cacheGateway storage.CacheGateway
	auditGateway audit.AuditGateway
}

func NewHealthUseCase(cacheGateway storage.CacheGateway, auditGateway audit.AuditGateway) UseCase {
	return &healthUseCase{
		cacheGateway: cacheGateway,
		auditGateway: auditGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var wg sync.WaitGroup
	var storageHealth, auditHealth model.ComponentHealthStatus

	wg.Add(1)
	go func() {
		defer wg.Done()
		storageHealth = componentHealth(useCase.cacheGateway.Ping(ctx))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		auditHealth = componentHealth(useCase.auditGateway.Ping(ctx))
	}()

	wg.Wait()

	overallStatus := model.StatusUp
	if storageHealth.Status != model.StatusUp || auditHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:  overallStatus,
		Storage: storageHealth,
		Audit:   auditHealth,
	}
}

func componentHealth(err error) model.ComponentHealthStatus {
	if err != nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusDown,
			Details: map[string]string{"error": err.Error()},
		}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: map[string]string{}}
}
