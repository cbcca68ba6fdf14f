package http

import (
	"errors"
	"net/http"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/service"
	"github.com/trackware/gatekeep/pkg/gatesdk"
	"github.com/trackware/gatekeep/pkg/httpx"
	"github.com/trackware/gatekeep/pkg/slogx"
)

// writeError writes the uniform error document. The description is safe to
// show to callers; internal detail stays in the logs.
func writeError(w http.ResponseWriter, code int, errCode, description string) {
	httpx.WriteJSON(w, code, gatesdk.ErrorResponse{
		Error:            errCode,
		ErrorDescription: description,
	})
}

// writeServiceError maps service-layer sentinel errors onto HTTP statuses and
// wire error codes. Unknown errors become an opaque 500 and get logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDomain):
		writeError(w, http.StatusBadRequest, gatesdk.ErrorCodeInvalidDomain, err.Error())
	case errors.Is(err, domain.ErrInvalidClient):
		writeError(w, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrClientNotFound):
		writeError(w, http.StatusNotFound, gatesdk.ErrorCodeClientNotFound, "client not found")
	case errors.Is(err, service.ErrDomainNotFound):
		writeError(w, http.StatusNotFound, gatesdk.ErrorCodeDomainNotFound, "domain not found")
	case errors.Is(err, service.ErrDomainConflict):
		writeError(w, http.StatusConflict, gatesdk.ErrorCodeDomainConflict, "domain is registered to another client")
	case errors.Is(err, service.ErrPrimaryExists):
		writeError(w, http.StatusConflict, gatesdk.ErrorCodePrimaryConflict, "client already has a primary domain")
	case errors.Is(err, service.ErrClientHasDomains):
		writeError(w, http.StatusConflict, gatesdk.ErrorCodeClientHasDomains, "client still has registered domains")
	case errors.Is(err, service.ErrInconsistentIndex):
		writeError(w, http.StatusInternalServerError, gatesdk.ErrorCodeConsistencyError, "domain index is inconsistent")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, gatesdk.ErrorCodeServerError, "internal server error")
	}
}
