package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/service"
	"github.com/trackware/gatekeep/pkg/gatesdk"
	"github.com/trackware/gatekeep/pkg/httpx"
)

// DomainsHandler serves the domain index endpoints nested under a client.
type DomainsHandler struct {
	DomainIndexService *service.DomainIndexService
}

// HandleAdd authorizes a domain for a client.
//
//	@Summary		Authorize a domain
//	@Description	Adds a domain to the client's authorization set. The first
//	@Description	domain of a client becomes primary regardless of the flag;
//	@Description	re-adding a domain the client already owns updates the
//	@Description	primary flag instead of failing.
//	@Tags			Domains
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Client ID"
//	@Param			request	body		gatesdk.DomainRequest	true	"Domain to authorize"
//	@Success		201		{object}	gatesdk.DomainInfo
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Invalid domain"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403		{object}	gatesdk.ErrorResponse	"Missing admin:write scope"
//	@Failure		404		{object}	gatesdk.ErrorResponse	"Client not found"
//	@Failure		409		{object}	gatesdk.ErrorResponse	"Domain owned by another client, or primary conflict"
//	@Router			/v1/clients/{id}/domains [post]
func (h *DomainsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req gatesdk.DomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "invalid JSON body")
		return
	}

	entry, err := h.DomainIndexService.Put(r.Context(), req.Domain, r.PathValue("id"), req.IsPrimary)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toDomainInfo(entry))
}

// HandleList lists the client's authorized domains.
//
//	@Summary	List a client's domains
//	@Tags		Domains
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Client ID"
//	@Success	200	{object}	gatesdk.ListDomainsResponse
//	@Failure	401	{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure	403	{object}	gatesdk.ErrorResponse	"Missing admin:read scope"
//	@Failure	404	{object}	gatesdk.ErrorResponse	"Client not found"
//	@Router		/v1/clients/{id}/domains [get]
func (h *DomainsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DomainIndexService.ListForClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := gatesdk.ListDomainsResponse{Domains: make([]gatesdk.DomainInfo, 0, len(entries))}
	for _, e := range entries {
		resp.Domains = append(resp.Domains, toDomainInfo(e))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRemove revokes a domain authorization.
//
//	@Summary		Revoke a domain
//	@Description	Removes a domain from the client's authorization set. A
//	@Description	domain registered to a different client answers 404, the
//	@Description	same as a plain miss.
//	@Tags			Domains
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Client ID"
//	@Param			domain	path	string	true	"Domain to revoke"
//	@Success		204
//	@Failure		401	{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"Missing admin:write scope"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"Domain not found for this client"
//	@Router			/v1/clients/{id}/domains/{domain} [delete]
func (h *DomainsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	err := h.DomainIndexService.Delete(r.Context(), r.PathValue("domain"), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDomainInfo(e domain.DomainEntry) gatesdk.DomainInfo {
	return gatesdk.DomainInfo{
		Domain:    e.Domain,
		ClientID:  e.ClientID,
		IsPrimary: e.IsPrimary,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
