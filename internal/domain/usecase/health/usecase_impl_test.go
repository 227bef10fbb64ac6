package health

import (
	"context"
	"errors"
	"testing"

	"weather-api/internal/domain/model"
)

type fakeCacheGateway struct{ pingErr error }

func (f *fakeCacheGateway) GetFresh(ctx context.Context, city string) (model.WeatherRecord, string, error) {
	return nil, "", nil
}

func (f *fakeCacheGateway) Put(ctx context.Context, city string, record model.WeatherRecord) (string, string, error) {
	return "", "", nil
}

func (f *fakeCacheGateway) Ping(ctx context.Context) error { return f.pingErr }

type fakeAuditGateway struct{ pingErr error }

func (f *fakeAuditGateway) Record(ctx context.Context, city string, storagePath string, record model.WeatherRecord) (string, error) {
	return "", nil
}

func (f *fakeAuditGateway) Ping(ctx context.Context) error { return f.pingErr }

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name        string
		storageErr  error
		auditErr    error
		wantOverall model.HealthStatus
		wantStorage model.HealthStatus
		wantAudit   model.HealthStatus
	}{
		{"all up", nil, nil, model.StatusUp, model.StatusUp, model.StatusUp},
		{"storage down", errors.New("no bucket"), nil, model.StatusDown, model.StatusDown, model.StatusUp},
		{"audit down", nil, errors.New("no table"), model.StatusDown, model.StatusUp, model.StatusDown},
		{"all down", errors.New("a"), errors.New("b"), model.StatusDown, model.StatusDown, model.StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewHealthUseCase(&fakeCacheGateway{pingErr: tt.storageErr}, &fakeAuditGateway{pingErr: tt.auditErr})
			got := useCase.CheckHealth(context.Background())

			if got.Status != tt.wantOverall {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantOverall)
			}
			if got.Storage.Status != tt.wantStorage {
				t.Errorf("Storage.Status = %v, want %v", got.Storage.Status, tt.wantStorage)
			}
			if got.Audit.Status != tt.wantAudit {
				t.Errorf("Audit.Status = %v, want %v", got.Audit.Status, tt.wantAudit)
			}
			if tt.storageErr != nil && got.Storage.Details["error"] == "" {
				t.Error("expected storage error detail")
			}
		})
	}
}
