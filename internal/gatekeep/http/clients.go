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

// ClientsHandler serves the admin client configuration endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate registers a new client configuration.
//
//	@Summary		Create a client
//	@Description	Registers a new client configuration record. Clients on a
//	@Description	privacy level that requires IP hashing are assigned a
//	@Description	generated salt; billing_entity defaults to owner.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gatesdk.ClientRequest	true	"Client configuration"
//	@Success		201		{object}	gatesdk.ClientInfo
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Invalid configuration"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403		{object}	gatesdk.ErrorResponse	"Missing admin:write scope"
//	@Router			/v1/clients [post]
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req gatesdk.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "invalid JSON body")
		return
	}

	c, err := h.ClientService.CreateClient(r.Context(), service.NewClientParams{
		Name:           req.Name,
		Email:          req.Email,
		Owner:          req.Owner,
		BillingEntity:  req.BillingEntity,
		ClientType:     domain.ClientType(req.ClientType),
		PrivacyLevel:   domain.PrivacyLevel(req.PrivacyLevel),
		DeploymentType: domain.DeploymentType(req.DeploymentType),
		VMHostname:     req.VMHostname,
		Features:       req.Features,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientInfo(c))
}

// HandleList lists all client configurations.
//
//	@Summary	List clients
//	@Tags		Clients
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	gatesdk.ListClientsResponse
//	@Failure	401	{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure	403	{object}	gatesdk.ErrorResponse	"Missing admin:read scope"
//	@Router		/v1/clients [get]
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientService.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := gatesdk.ListClientsResponse{Clients: make([]gatesdk.ClientInfo, 0, len(clients))}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, toClientInfo(c))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet fetches a single client configuration by id.
//
//	@Summary	Get a client
//	@Tags		Clients
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Client ID"
//	@Success	200	{object}	gatesdk.ClientInfo
//	@Failure	401	{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure	403	{object}	gatesdk.ErrorResponse	"Missing admin:read scope"
//	@Failure	404	{object}	gatesdk.ErrorResponse	"Client not found"
//	@Router		/v1/clients/{id} [get]
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientService.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientInfo(c))
}

// HandleUpdate replaces the configuration for a client.
//
//	@Summary		Update a client
//	@Description	Replaces the client record. ID, creation time and the IP
//	@Description	salt are preserved across updates.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Client ID"
//	@Param			request	body		gatesdk.ClientRequest	true	"New client configuration"
//	@Success		200		{object}	gatesdk.ClientInfo
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Invalid configuration"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403		{object}	gatesdk.ErrorResponse	"Missing admin:write scope"
//	@Failure		404		{object}	gatesdk.ErrorResponse	"Client not found"
//	@Router			/v1/clients/{id} [put]
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req gatesdk.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "invalid JSON body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	c, err := h.ClientService.UpdateClient(r.Context(), r.PathValue("id"), service.UpdateClientParams{
		Name:           req.Name,
		Email:          req.Email,
		Owner:          req.Owner,
		BillingEntity:  req.BillingEntity,
		ClientType:     domain.ClientType(req.ClientType),
		PrivacyLevel:   domain.PrivacyLevel(req.PrivacyLevel),
		DeploymentType: domain.DeploymentType(req.DeploymentType),
		VMHostname:     req.VMHostname,
		IsActive:       isActive,
		Features:       req.Features,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientInfo(c))
}

// HandleDelete removes a client configuration.
//
//	@Summary		Delete a client
//	@Description	Deletes a client record. Refused while the client still has
//	@Description	domain index entries unless cascade=true, which removes the
//	@Description	entries and the client in one transaction.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Client ID"
//	@Param			cascade	query	bool	false	"Also remove the client's domain entries"
//	@Success		204
//	@Failure		401	{object}	gatesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"Missing admin:write scope"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"Client not found"
//	@Failure		409	{object}	gatesdk.ErrorResponse	"Client still has domains"
//	@Router			/v1/clients/{id} [delete]
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cascade := r.URL.Query().Get("cascade") == "true"

	if err := h.ClientService.DeleteClient(r.Context(), r.PathValue("id"), cascade); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toClientInfo(c domain.Client) gatesdk.ClientInfo {
	return gatesdk.ClientInfo{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Owner:          c.Owner,
		BillingEntity:  c.BillingEntity,
		ClientType:     string(c.ClientType),
		PrivacyLevel:   string(c.PrivacyLevel),
		DeploymentType: string(c.DeploymentType),
		VMHostname:     c.VMHostname,
		HasIPSalt:      c.IPSalt != "",
		IsActive:       c.IsActive,
		Features:       c.Features,
		CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
