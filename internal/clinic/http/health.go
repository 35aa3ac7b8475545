package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	Started time.Time
	Version string
	Store   store.Store
}

func (h *HealthHandler) response(status string, checks *clinicsdk.HealthChecks) clinicsdk.HealthResponse {
	return clinicsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Truncate(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Reports that the process is up, with uptime and build version. Never touches the database.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	clinicsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.response("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the record store. Answers 503 while the database is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	clinicsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	clinicsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable,
			h.response("degraded", &clinicsdk.HealthChecks{Database: "error: " + err.Error()}))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.response("ok", &clinicsdk.HealthChecks{Database: "ok"}))
}
