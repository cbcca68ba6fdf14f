package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/store"
	"github.com/trackware/gatekeep/pkg/cryptox"
	"github.com/trackware/gatekeep/pkg/idx"
	"github.com/trackware/gatekeep/pkg/slogx"
)

// ClientService owns the client configuration lifecycle for the admin
// mutation gateway. The resolver reads client records through the store
// directly; this service is the only writer.
type ClientService struct {
	Store store.Store
}

// NewClientParams are the operator-supplied fields for a new client. The id,
// salt and timestamps are assigned here.
type NewClientParams struct {
	Name           string
	Email          string
	Owner          string
	BillingEntity  string
	ClientType     domain.ClientType
	PrivacyLevel   domain.PrivacyLevel
	DeploymentType domain.DeploymentType
	VMHostname     string
	Features       map[string]any
}

// CreateClient creates a new client configuration record. Clients on a
// privacy level that requires IP hashing get a generated per-client salt.
// billing_entity falls back to owner when unset.
func (s *ClientService) CreateClient(ctx context.Context, p NewClientParams) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	c := domain.Client{
		ID:             idx.New().String(),
		Name:           strings.TrimSpace(p.Name),
		Email:          strings.TrimSpace(p.Email),
		Owner:          strings.TrimSpace(p.Owner),
		BillingEntity:  strings.TrimSpace(p.BillingEntity),
		ClientType:     p.ClientType,
		PrivacyLevel:   p.PrivacyLevel,
		DeploymentType: p.DeploymentType,
		VMHostname:     strings.TrimSpace(p.VMHostname),
		IsActive:       true,
		Features:       p.Features,
	}
	if c.BillingEntity == "" {
		c.BillingEntity = c.Owner
	}

	if err := c.Validate(); err != nil {
		return domain.Client{}, err
	}

	if c.PrivacyLevel.RequiresIPHashing() {
		salt, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			l.Error("failed to generate ip salt", "error", err)
			return domain.Client{}, err
		}
		c.IPSalt = salt
	}

	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		l.Error("failed to create client", "error", err)
		return domain.Client{}, err
	}

	l.Info("client created",
		"client_id", c.ID,
		"privacy_level", c.PrivacyLevel,
		"deployment_type", c.DeploymentType,
	)

	created, err := s.Store.Clients().GetClientByID(ctx, c.ID)
	if err != nil {
		return domain.Client{}, err
	}
	return created, nil
}

// GetClient returns a client configuration record by id.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

// ListClients returns all client records, newest first.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// UpdateClientParams carry the replacement record for a full update. Zero
// values are written as-is; this is a replace, not a patch.
type UpdateClientParams struct {
	Name           string
	Email          string
	Owner          string
	BillingEntity  string
	ClientType     domain.ClientType
	PrivacyLevel   domain.PrivacyLevel
	DeploymentType domain.DeploymentType
	VMHostname     string
	IsActive       bool
	Features       map[string]any
}

// UpdateClient replaces the record for clientID. ID, created_at and the IP
// salt are preserved; a salt is generated if the privacy level changes to one
// that needs it (existing hashed data stays comparable because the salt never
// rotates here).
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, p UpdateClientParams) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	existing, err := s.GetClient(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	c := domain.Client{
		ID:             existing.ID,
		Name:           strings.TrimSpace(p.Name),
		Email:          strings.TrimSpace(p.Email),
		Owner:          strings.TrimSpace(p.Owner),
		BillingEntity:  strings.TrimSpace(p.BillingEntity),
		ClientType:     p.ClientType,
		PrivacyLevel:   p.PrivacyLevel,
		DeploymentType: p.DeploymentType,
		VMHostname:     strings.TrimSpace(p.VMHostname),
		IPSalt:         existing.IPSalt,
		IsActive:       p.IsActive,
		Features:       p.Features,
		CreatedAt:      existing.CreatedAt,
	}
	if c.BillingEntity == "" {
		c.BillingEntity = c.Owner
	}

	if err := c.Validate(); err != nil {
		return domain.Client{}, err
	}

	if c.PrivacyLevel.RequiresIPHashing() && c.IPSalt == "" {
		salt, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Client{}, err
		}
		c.IPSalt = salt
	}

	if err := s.Store.Clients().UpdateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		l.Error("failed to update client", "error", err, "client_id", clientID)
		return domain.Client{}, err
	}

	l.Info("client updated", "client_id", clientID, "is_active", c.IsActive)

	return s.GetClient(ctx, clientID)
}

// DeleteClient removes a client record. While the client still owns domain
// index entries the delete is refused unless cascade is set, in which case
// the domains are removed first so no observable state ever has a domain
// pointing at a missing client (domain-then-client ordering).
func (s *ClientService) DeleteClient(ctx context.Context, clientID string, cascade bool) error {
	l := slogx.FromContext(ctx)

	if _, err := s.GetClient(ctx, clientID); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Domains().CountDomainsByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if count > 0 {
			if !cascade {
				return fmt.Errorf("%w: %d attached", ErrClientHasDomains, count)
			}
			removed, err := tx.Domains().DeleteDomainsByClient(ctx, clientID)
			if err != nil {
				return err
			}
			l.Info("cascade-deleted client domains", "client_id", clientID, "count", removed)
		}

		if err := tx.Clients().DeleteClient(ctx, clientID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("client deleted", "client_id", clientID)
	return nil
}
