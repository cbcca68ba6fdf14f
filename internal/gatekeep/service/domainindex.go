package service

import (
	"context"
	"errors"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/store"
	"github.com/trackware/gatekeep/pkg/slogx"
)

// DomainIndexService maintains the hostname → client mapping. Uniqueness of
// the mapping is the security property the service exists for, so every write
// goes through a transaction that re-checks ownership under the lock.
type DomainIndexService struct {
	Store store.Store
}

// Put authorizes a domain for a client. The hostname is normalized first;
// puts are idempotent for the same client and fail with ErrDomainConflict
// when the hostname is held by a different client.
//
// Primary rule: at most one primary per client. The first domain a client
// registers is forced primary so every client with domains has exactly one.
// A put that would create a second primary fails with ErrPrimaryExists;
// callers demote the old primary explicitly by re-putting it as non-primary.
func (s *DomainIndexService) Put(ctx context.Context, rawDomain, clientID string, isPrimary bool) (domain.DomainEntry, error) {
	l := slogx.FromContext(ctx)

	dom, err := domain.NormalizeDomain(rawDomain)
	if err != nil {
		return domain.DomainEntry{}, err
	}

	var entry domain.DomainEntry
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Client must exist before the domain becomes visible
		// (client-then-domain ordering on create).
		if _, err := tx.Clients().GetClientByID(ctx, clientID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		existing, err := tx.Domains().GetDomain(ctx, dom)
		switch {
		case err == nil:
			if existing.ClientID != clientID {
				return ErrDomainConflict
			}
			if existing.IsPrimary == isPrimary {
				entry = existing // idempotent re-put
				return nil
			}
			return s.changePrimary(ctx, tx, existing, isPrimary, &entry)
		case errors.Is(err, store.ErrNotFound):
			return s.insert(ctx, tx, dom, clientID, isPrimary, &entry)
		default:
			return err
		}
	})
	if err != nil {
		return domain.DomainEntry{}, err
	}

	l.Info("domain authorized",
		"domain", entry.Domain,
		"client_id", entry.ClientID,
		"is_primary", entry.IsPrimary,
	)
	return entry, nil
}

func (s *DomainIndexService) insert(ctx context.Context, tx store.Tx, dom, clientID string, isPrimary bool, out *domain.DomainEntry) error {
	count, err := tx.Domains().CountDomainsByClient(ctx, clientID)
	if err != nil {
		return err
	}
	if count == 0 {
		isPrimary = true // first domain is always the primary
	} else if isPrimary {
		if err := s.requireNoPrimary(ctx, tx, clientID); err != nil {
			return err
		}
	}

	e := domain.DomainEntry{Domain: dom, ClientID: clientID, IsPrimary: isPrimary}
	if err := tx.Domains().CreateDomain(ctx, e); err != nil {
		// Lost a race with a concurrent put for the same hostname.
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDomainConflict
		}
		return err
	}

	created, err := tx.Domains().GetDomain(ctx, dom)
	if err != nil {
		return err
	}
	*out = created
	return nil
}

func (s *DomainIndexService) changePrimary(ctx context.Context, tx store.Tx, existing domain.DomainEntry, isPrimary bool, out *domain.DomainEntry) error {
	if isPrimary {
		if err := s.requireNoPrimary(ctx, tx, existing.ClientID); err != nil {
			return err
		}
	}
	if err := tx.Domains().UpdateDomainPrimary(ctx, existing.Domain, isPrimary); err != nil {
		return err
	}
	existing.IsPrimary = isPrimary
	*out = existing
	return nil
}

func (s *DomainIndexService) requireNoPrimary(ctx context.Context, tx store.Tx, clientID string) error {
	_, err := tx.Domains().GetPrimaryDomain(ctx, clientID)
	switch {
	case err == nil:
		return ErrPrimaryExists
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Get looks up an index entry by raw hostname.
func (s *DomainIndexService) Get(ctx context.Context, rawDomain string) (domain.DomainEntry, error) {
	dom, err := domain.NormalizeDomain(rawDomain)
	if err != nil {
		return domain.DomainEntry{}, err
	}

	entry, err := s.Store.Domains().GetDomain(ctx, dom)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DomainEntry{}, ErrDomainNotFound
		}
		return domain.DomainEntry{}, err
	}
	return entry, nil
}

// ListForClient returns every domain a client owns, primary first.
func (s *DomainIndexService) ListForClient(ctx context.Context, clientID string) ([]domain.DomainEntry, error) {
	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.Store.Domains().ListDomainsByClient(ctx, clientID)
}

// Delete removes a domain authorization. The entry must belong to clientID;
// a mismatch reports ErrDomainNotFound, identical to a plain miss, so one
// client's stale admin action can neither probe nor remove another client's
// mapping.
func (s *DomainIndexService) Delete(ctx context.Context, rawDomain, clientID string) error {
	l := slogx.FromContext(ctx)

	dom, err := domain.NormalizeDomain(rawDomain)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		entry, err := tx.Domains().GetDomain(ctx, dom)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrDomainNotFound
			}
			return err
		}
		if entry.ClientID != clientID {
			return ErrDomainNotFound
		}
		return tx.Domains().DeleteDomain(ctx, dom)
	})
	if err != nil {
		return err
	}

	l.Info("domain deauthorized", "domain", dom, "client_id", clientID)
	return nil
}
