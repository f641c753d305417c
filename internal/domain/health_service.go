package domain

import (
	"context"

	"github.com/Vovarama1992/human_translator/internal/error_notificator"
	"github.com/Vovarama1992/human_translator/internal/ports"
)

const statusHealthy = "healthy"

type Health struct {
	Healthy bool
	Status  string
	Version string
}

type HealthService struct {
	api      ports.HealthAPI
	notifier error_notificator.Notificator
}

func NewHealthService(api ports.HealthAPI, n error_notificator.Notificator) *HealthService {
	return &HealthService{api: api, notifier: n}
}

// Check never fails: any error is reported as an unhealthy result.
func (s *HealthService) Check(ctx context.Context) Health {
	resp, err := s.api.Health(ctx)
	if err != nil {
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, "health", err, "health endpoint unreachable")
		}
		return Health{Status: "unreachable"}
	}

	return Health{
		Healthy: resp.Status == statusHealthy,
		Status:  resp.Status,
		Version: resp.Version,
	}
}
