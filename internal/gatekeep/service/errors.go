package service

import "errors"

var (
	// ErrClientNotFound is the admin-path miss for client reads/updates.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientHasDomains blocks deleting a client that still owns domain
	// index entries; the caller must detach or cascade explicitly.
	ErrClientHasDomains = errors.New("client still has registered domains")

	// ErrUnauthorizedDomain is the expected, high-frequency "no" of the
	// resolve path. It covers both unindexed domains and inactive clients;
	// the two are deliberately indistinguishable to callers.
	ErrUnauthorizedDomain = errors.New("domain is not authorized")

	// ErrDomainConflict is raised on put when the domain already belongs to a
	// different client. It never reaches the resolve path.
	ErrDomainConflict = errors.New("domain is claimed by another client")

	// ErrPrimaryExists is raised on put when the client already has a
	// different primary domain.
	ErrPrimaryExists = errors.New("client already has a primary domain")

	// ErrDomainNotFound is the admin-path miss for domain index entries. It
	// also covers ownership mismatches on delete, so a stale key cannot
	// reveal or remove another client's mapping.
	ErrDomainNotFound = errors.New("domain entry not found")

	// ErrInconsistentIndex reports a data-integrity fault: an index entry
	// referencing a missing client, a dedicated deployment without a
	// hostname, or a hashing privacy level without a salt. Never conflated
	// with ErrUnauthorizedDomain; it means the mutation path has a bug, not
	// that access was legitimately denied.
	ErrInconsistentIndex = errors.New("domain index is inconsistent")
)
