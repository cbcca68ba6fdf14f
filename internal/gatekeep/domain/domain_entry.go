package domain

import "time"

// DomainEntry is one row of the domain index: a normalized hostname mapped to
// the single client authorized to collect for it. The hostname is the key;
// two clients must never hold the same hostname at once.
type DomainEntry struct {
	Domain    string // normalized form, see NormalizeDomain
	ClientID  string
	IsPrimary bool
	CreatedAt time.Time
}
