package gatesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared between server handlers and SDK callers.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidDomain      = "invalid_domain"
	ErrorCodeUnauthorizedDomain = "unauthorized_domain"
	ErrorCodeConsistencyError   = "consistency_error"
	ErrorCodeClientNotFound     = "client_not_found"
	ErrorCodeDomainNotFound     = "domain_not_found"
	ErrorCodeDomainConflict     = "domain_conflict"
	ErrorCodePrimaryConflict    = "primary_conflict"
	ErrorCodeClientHasDomains   = "client_has_domains"
	ErrorCodeServerError        = "server_error"
)

// APIError is a typed error decoded from an ErrorResponse. The SDK returns
// it for every non-2xx status so callers can switch on Code.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsUnauthorizedDomain reports whether err is the resolver's "do not collect"
// answer. Agents must treat every other error the same way; this helper only
// exists so they can distinguish the expected no from operational failures in
// their own telemetry.
func IsUnauthorizedDomain(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.Code == ErrorCodeUnauthorizedDomain || apiErr.Code == ErrorCodeInvalidDomain)
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
// Returns nil for success status codes.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
