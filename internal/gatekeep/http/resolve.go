package http

import (
	"errors"
	"net/http"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/service"
	"github.com/trackware/gatekeep/pkg/gatesdk"
	"github.com/trackware/gatekeep/pkg/httpx"
)

// ResolveHandler serves the hot-path policy lookup used by tracking agents.
type ResolveHandler struct {
	ResolverService *service.ResolverService
}

// HandleResolve resolves a hostname to the policy of the owning client.
//
// Fail-closed contract: any outcome other than 200 means "do not collect".
// Unknown and malformed hostnames both answer 404 so probing the endpoint
// cannot distinguish "never registered" from "rejected input"; integrity
// faults answer 500 with a distinct error code because they demand operator
// attention rather than silence.
//
//	@Summary		Resolve a hostname to its tracking policy
//	@Description	Maps a hostname to the privacy and deployment policy of the
//	@Description	client that owns it. Agents must call this before collecting
//	@Description	and treat every non-200 answer as a denial.
//	@Tags			Resolve
//	@Produce		json
//	@Param			hostname	path		string	true	"Hostname to resolve (port and scheme tolerated)"
//	@Success		200			{object}	gatesdk.ResolvedPolicy
//	@Failure		404			{object}	gatesdk.ErrorResponse	"Domain not authorized or invalid"
//	@Failure		500			{object}	gatesdk.ErrorResponse	"Index inconsistency or internal error"
//	@Router			/v1/resolve/{hostname} [get]
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	hostname := r.PathValue("hostname")

	policy, err := h.ResolverService.Resolve(r.Context(), hostname)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, policy)
	case errors.Is(err, service.ErrUnauthorizedDomain):
		writeError(w, http.StatusNotFound, gatesdk.ErrorCodeUnauthorizedDomain, "domain is not authorized for tracking")
	case errors.Is(err, domain.ErrInvalidDomain):
		// Same status as an unauthorized miss; agents react identically.
		writeError(w, http.StatusNotFound, gatesdk.ErrorCodeInvalidDomain, "hostname is not a valid domain")
	default:
		writeServiceError(w, r, err)
	}
}
