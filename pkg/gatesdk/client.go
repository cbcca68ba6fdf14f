package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to a gatekeep service. Resolve needs no credentials; the
// admin operations require a bearer token set via WithAdminToken.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	adminToken string
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithAdminToken returns a copy of the client that sends the given bearer
// token on admin requests.
func (c *SDKClient) WithAdminToken(token string) *SDKClient {
	clone := *c
	clone.adminToken = token
	return &clone
}

// Resolve asks the service for the tracking policy of a hostname. A nil
// error means tracking is authorized under the returned policy; any error
// means "do not collect for this domain".
func (c *SDKClient) Resolve(ctx context.Context, hostname string) (*ResolvedPolicy, error) {
	var policy ResolvedPolicy
	err := c.doJSON(ctx, http.MethodGet, "/v1/resolve/"+url.PathEscape(hostname), nil, &policy, false)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// CreateClient registers a new client configuration.
func (c *SDKClient) CreateClient(ctx context.Context, req ClientRequest) (*ClientInfo, error) {
	var info ClientInfo
	if err := c.doJSON(ctx, http.MethodPost, "/v1/clients", req, &info, true); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetClient fetches one client record.
func (c *SDKClient) GetClient(ctx context.Context, clientID string) (*ClientInfo, error) {
	var info ClientInfo
	if err := c.doJSON(ctx, http.MethodGet, "/v1/clients/"+url.PathEscape(clientID), nil, &info, true); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListClients fetches all client records.
func (c *SDKClient) ListClients(ctx context.Context) ([]ClientInfo, error) {
	var resp ListClientsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/clients", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// UpdateClient replaces a client record in full.
func (c *SDKClient) UpdateClient(ctx context.Context, clientID string, req ClientRequest) (*ClientInfo, error) {
	var info ClientInfo
	if err := c.doJSON(ctx, http.MethodPut, "/v1/clients/"+url.PathEscape(clientID), req, &info, true); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteClient removes a client. With cascade, its domain authorizations are
// removed first; without, the call fails while domains remain.
func (c *SDKClient) DeleteClient(ctx context.Context, clientID string, cascade bool) error {
	path := "/v1/clients/" + url.PathEscape(clientID)
	if cascade {
		path += "?cascade=true"
	}
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

// AddDomain authorizes a domain for a client.
func (c *SDKClient) AddDomain(ctx context.Context, clientID string, req DomainRequest) (*DomainInfo, error) {
	var info DomainInfo
	path := "/v1/clients/" + url.PathEscape(clientID) + "/domains"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &info, true); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListDomains lists a client's authorized domains.
func (c *SDKClient) ListDomains(ctx context.Context, clientID string) ([]DomainInfo, error) {
	var resp ListDomainsResponse
	path := "/v1/clients/" + url.PathEscape(clientID) + "/domains"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// RemoveDomain deauthorizes a domain for a client.
func (c *SDKClient) RemoveDomain(ctx context.Context, clientID, dom string) error {
	path := "/v1/clients/" + url.PathEscape(clientID) + "/domains/" + url.PathEscape(dom)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

// Livez checks the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doJSON performs one request/response round trip with JSON bodies. out may
// be nil for responses without a body (204).
func (c *SDKClient) doJSON(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
