package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClientType categorises the billing relationship for a client.
type ClientType string

const (
	ClientTypeEndClient  ClientType = "end_client"
	ClientTypeAgency     ClientType = "agency"
	ClientTypeEnterprise ClientType = "enterprise"
)

// PrivacyLevel is the compliance tier. It fully determines IP handling and
// consent defaults; there is no per-client override.
type PrivacyLevel string

const (
	PrivacyStandard PrivacyLevel = "standard"
	PrivacyGDPR     PrivacyLevel = "gdpr"
	PrivacyHIPAA    PrivacyLevel = "hipaa"
)

// DeploymentType selects how tracking traffic for the client is routed.
type DeploymentType string

const (
	DeploymentShared    DeploymentType = "shared"
	DeploymentDedicated DeploymentType = "dedicated"
)

var ErrInvalidClient = errors.New("domain: invalid client configuration")

// Client is the per-client configuration record. ID is assigned at creation
// and immutable; updates replace the full record.
type Client struct {
	ID            string
	Name          string
	Email         string
	Owner         string
	BillingEntity string

	ClientType     ClientType
	PrivacyLevel   PrivacyLevel
	DeploymentType DeploymentType
	VMHostname     string

	// IPSalt is the client-specific salt handed to tracking agents when the
	// privacy level requires hashed IPs. Empty for standard clients.
	IPSalt string

	IsActive bool

	// Features is an open flag map passed through to agents untouched.
	Features map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t ClientType) Valid() bool {
	switch t {
	case ClientTypeEndClient, ClientTypeAgency, ClientTypeEnterprise:
		return true
	}
	return false
}

func (p PrivacyLevel) Valid() bool {
	switch p {
	case PrivacyStandard, PrivacyGDPR, PrivacyHIPAA:
		return true
	}
	return false
}

// RequiresIPHashing reports whether agents must hash IPs before storing them.
func (p PrivacyLevel) RequiresIPHashing() bool {
	return p == PrivacyGDPR || p == PrivacyHIPAA
}

func (d DeploymentType) Valid() bool {
	switch d {
	case DeploymentShared, DeploymentDedicated:
		return true
	}
	return false
}

// Validate checks the cross-field invariants a client record must satisfy
// before it is written. A dedicated deployment without a hostname is rejected
// here so the resolver only ever sees it as a pre-existing data fault.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	if !c.ClientType.Valid() {
		return fmt.Errorf("%w: unknown client_type %q", ErrInvalidClient, c.ClientType)
	}
	if !c.PrivacyLevel.Valid() {
		return fmt.Errorf("%w: unknown privacy_level %q", ErrInvalidClient, c.PrivacyLevel)
	}
	if !c.DeploymentType.Valid() {
		return fmt.Errorf("%w: unknown deployment_type %q", ErrInvalidClient, c.DeploymentType)
	}
	if c.DeploymentType == DeploymentDedicated && strings.TrimSpace(c.VMHostname) == "" {
		return fmt.Errorf("%w: dedicated deployment requires vm_hostname", ErrInvalidClient)
	}
	return nil
}
