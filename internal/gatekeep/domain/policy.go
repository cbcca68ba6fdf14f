package domain

// ResolvedPolicy is the ephemeral resolver output describing how a tracking
// agent must behave for one domain. It is assembled per request and never
// persisted.
type ResolvedPolicy struct {
	ClientID     string       `json:"client_id"`
	PrivacyLevel PrivacyLevel `json:"privacy_level"`

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

// ConsentBehavior is what an agent does before consent state is known.
type ConsentBehavior string

const (
	ConsentAllow ConsentBehavior = "allow"
	ConsentBlock ConsentBehavior = "block"
)

type ConsentPolicy struct {
	Required        bool            `json:"required"`
	DefaultBehavior ConsentBehavior `json:"default_behavior"`
}

type DeploymentPolicy struct {
	Type DeploymentType `json:"type"`
	// Hostname is populated only for dedicated deployments.
	Hostname string `json:"hostname,omitempty"`
}
