// Package handler provides HTTP handlers for the SkyCast API.
package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/skycast/skycast/internal/api/models"
	"github.com/skycast/skycast/internal/api/response"
	"github.com/skycast/skycast/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// Providers handles GET /v1/ops/providers - upstream provider health.
// Overall status is DEGRADED when any circuit is half-open and FAIL when any
// circuit is open.
func (h *OpsHandler) Providers(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.ProvidersStatus{
		Status:    models.HealthStatusOK,
		Time:      now,
		Providers: []models.ProviderStatus{},
	}

	for _, ph := range h.registry.GetAllHealth() {
		ps := models.ProviderStatus{
			Provider:     ph.Name,
			Status:       providerStatus(ph),
			CircuitState: ph.CircuitState.String(),
		}
		if ph.LastSuccessAt != nil {
			ts := models.Timestamp(*ph.LastSuccessAt)
			ps.LastSuccessAt = &ts
		}
		if ph.LastFailureAt != nil {
			ts := models.Timestamp(*ph.LastFailureAt)
			ps.LastFailureAt = &ts
		}
		if ph.LastError != "" {
			msg := ph.LastError
			ps.Message = &msg
		}

		switch ps.Status {
		case models.HealthStatusFail:
			status.Status = models.HealthStatusFail
		case models.HealthStatusDegraded:
			if status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
		}

		status.Providers = append(status.Providers, ps)
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(h *resilience.ProviderHealth) models.HealthStatus {
	switch h.CircuitState {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
