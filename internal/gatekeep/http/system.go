package http

import (
	"net/http"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/store"
	"github.com/trackware/gatekeep/pkg/gatesdk"
	"github.com/trackware/gatekeep/pkg/httpx"
	"github.com/trackware/gatekeep/pkg/slogx"
)

// LivezHandler reports process liveness. It never touches the database.
//
//	@Summary	Liveness probe
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	gatesdk.HealthResponse
//	@Router		/livez [get]
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, gatesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	})
}

// ReadyzHandler reports readiness to serve resolves, which requires a
// reachable database.
//
//	@Summary	Readiness probe
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	gatesdk.HealthResponse
//	@Failure	503	{object}	gatesdk.HealthResponse
//	@Router		/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := gatesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  &gatesdk.HealthChecks{Database: "ok"},
		}

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness database check failed", "error", err)
			resp.Status = "unavailable"
			resp.Checks.Database = "unreachable"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, resp)
	})
}
