package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/pkg/idx"
)

func TestCreateClientAssignsIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	p := newClientParams("Acme Corp")
	p.Email = "ops@acme.com"
	c, err := clients.CreateClient(ctx, p)
	require.NoError(t, err)

	_, err = idx.Parse(c.ID)
	require.NoError(t, err, "client id must be a ULID")

	require.True(t, c.IsActive, "new clients start active")
	require.Equal(t, "ops", c.BillingEntity, "billing_entity defaults to owner")
	require.Empty(t, c.IPSalt, "standard clients carry no salt")
	require.False(t, c.CreatedAt.IsZero())
	require.False(t, c.UpdatedAt.IsZero())
}

func TestCreateClientGeneratesSaltForGDPR(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	p := newClientParams("Euro Corp")
	p.PrivacyLevel = domain.PrivacyGDPR
	c, err := clients.CreateClient(ctx, p)
	require.NoError(t, err)
	require.NotEmpty(t, c.IPSalt)

	p2 := newClientParams("Other Euro Corp")
	p2.PrivacyLevel = domain.PrivacyGDPR
	c2, err := clients.CreateClient(ctx, p2)
	require.NoError(t, err)
	require.NotEqual(t, c.IPSalt, c2.IPSalt, "salts are per-client")
}

func TestCreateClientRejectsInvalidConfiguration(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	p := newClientParams("Dedicated Corp")
	p.DeploymentType = domain.DeploymentDedicated // no VMHostname
	_, err := clients.CreateClient(ctx, p)
	require.ErrorIs(t, err, domain.ErrInvalidClient)

	p = newClientParams("")
	_, err = clients.CreateClient(ctx, p)
	require.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestGetClientNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	_, err := clients.GetClient(ctx, "01JNOSUCHCLIENT0000000GONE")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestListClientsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	a := mustCreateClient(t, clients, newClientParams("First Corp"))
	b := mustCreateClient(t, clients, newClientParams("Second Corp"))

	list, err := clients.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, b.ID, list[0].ID)
	require.Equal(t, a.ID, list[1].ID)
}

func TestUpdateClientPreservesIdentityAndSalt(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	p := newClientParams("Euro Corp")
	p.PrivacyLevel = domain.PrivacyGDPR
	c := mustCreateClient(t, clients, p)

	updated, err := clients.UpdateClient(ctx, c.ID, UpdateClientParams{
		Name:           "Euro Corp Renamed",
		Owner:          "new-ops",
		ClientType:     domain.ClientTypeEnterprise,
		PrivacyLevel:   domain.PrivacyGDPR,
		DeploymentType: domain.DeploymentShared,
		IsActive:       true,
	})
	require.NoError(t, err)

	require.Equal(t, c.ID, updated.ID)
	require.Equal(t, "Euro Corp Renamed", updated.Name)
	require.Equal(t, c.IPSalt, updated.IPSalt, "salt never rotates on update")
	require.Equal(t, c.CreatedAt, updated.CreatedAt)
}

func TestUpdateClientGeneratesSaltOnPrivacyUpgrade(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))
	require.Empty(t, c.IPSalt)

	updated, err := clients.UpdateClient(ctx, c.ID, UpdateClientParams{
		Name:           c.Name,
		Owner:          c.Owner,
		ClientType:     c.ClientType,
		PrivacyLevel:   domain.PrivacyGDPR,
		DeploymentType: c.DeploymentType,
		IsActive:       true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, updated.IPSalt)
}

func TestDeleteClientRefusedWhileDomainsAttached(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))
	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	err = clients.DeleteClient(ctx, c.ID, false)
	require.ErrorIs(t, err, ErrClientHasDomains)

	// Client and domain both survive the refused delete.
	_, err = clients.GetClient(ctx, c.ID)
	require.NoError(t, err)
	_, err = index.Get(ctx, "acme.com")
	require.NoError(t, err)
}

func TestDeleteClientCascade(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))
	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)
	_, err = index.Put(ctx, "acme.io", c.ID, false)
	require.NoError(t, err)

	require.NoError(t, clients.DeleteClient(ctx, c.ID, true))

	_, err = clients.GetClient(ctx, c.ID)
	require.ErrorIs(t, err, ErrClientNotFound)

	// No ghost entries: resolves answer unauthorized, not inconsistent.
	_, err = resolver.Resolve(ctx, "acme.com")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)
	_, err = resolver.Resolve(ctx, "acme.io")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)
}

func TestDeleteClientWithoutDomains(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Empty Corp"))
	require.NoError(t, clients.DeleteClient(ctx, c.ID, false))

	require.ErrorIs(t, clients.DeleteClient(ctx, c.ID, false), ErrClientNotFound)
}
