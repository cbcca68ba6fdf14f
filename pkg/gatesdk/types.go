package gatesdk

// ErrorResponse is the uniform error document returned by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ResolvedPolicy is the resolver's answer for an authorized domain. It
// mirrors the server-side policy document field for field.
type ResolvedPolicy struct {
	ClientID     string `json:"client_id"`
	PrivacyLevel string `json:"privacy_level"`

	IPCollection IPCollectionPolicy `json:"ip_collection"`
	Consent      ConsentPolicy      `json:"consent"`

	Features map[string]any `json:"features,omitempty"`

	Deployment DeploymentPolicy `json:"deployment"`
}

type IPCollectionPolicy struct {
	Enabled      bool   `json:"enabled"`
	HashRequired bool   `json:"hash_required"`
	Salt         string `json:"salt,omitempty"`
}

type ConsentPolicy struct {
	Required        bool   `json:"required"`
	DefaultBehavior string `json:"default_behavior"`
}

type DeploymentPolicy struct {
	Type     string `json:"type"`
	Hostname string `json:"hostname,omitempty"`
}

// ClientRequest is the body for creating or replacing a client record.
type ClientRequest struct {
	Name           string         `json:"name"`
	Email          string         `json:"email,omitempty"`
	Owner          string         `json:"owner,omitempty"`
	BillingEntity  string         `json:"billing_entity,omitempty"`
	ClientType     string         `json:"client_type"`
	PrivacyLevel   string         `json:"privacy_level"`
	DeploymentType string         `json:"deployment_type"`
	VMHostname     string         `json:"vm_hostname,omitempty"`
	IsActive       *bool          `json:"is_active,omitempty"` // update only; defaults to true on create
	Features       map[string]any `json:"features,omitempty"`
}

// ClientInfo is the admin view of a client record. The IP salt is reported
// only as a presence flag; the salt itself is delivered to agents through the
// resolve path.
type ClientInfo struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email,omitempty"`
	Owner          string         `json:"owner,omitempty"`
	BillingEntity  string         `json:"billing_entity,omitempty"`
	ClientType     string         `json:"client_type"`
	PrivacyLevel   string         `json:"privacy_level"`
	DeploymentType string         `json:"deployment_type"`
	VMHostname     string         `json:"vm_hostname,omitempty"`
	HasIPSalt      bool           `json:"has_ip_salt"`
	IsActive       bool           `json:"is_active"`
	Features       map[string]any `json:"features,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// DomainRequest is the body for authorizing a domain for a client.
type DomainRequest struct {
	Domain    string `json:"domain"`
	IsPrimary bool   `json:"is_primary"`
}

// DomainInfo is one domain index entry.
type DomainInfo struct {
	Domain    string `json:"domain"`
	ClientID  string `json:"client_id"`
	IsPrimary bool   `json:"is_primary"`
	CreatedAt string `json:"created_at"`
}

type ListDomainsResponse struct {
	Domains []DomainInfo `json:"domains"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
