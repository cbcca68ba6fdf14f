package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
)

func TestResolveAuthorizedStandardClient(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	p := newClientParams("Acme Corp")
	p.Features = map[string]any{"heatmaps": true, "session_replay": false}
	c := mustCreateClient(t, clients, p)

	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	policy, err := resolver.Resolve(ctx, "acme.com")
	require.NoError(t, err)
	require.Equal(t, c.ID, policy.ClientID)
	require.Equal(t, domain.PrivacyStandard, policy.PrivacyLevel)

	require.True(t, policy.IPCollection.Enabled)
	require.False(t, policy.IPCollection.HashRequired)
	require.Empty(t, policy.IPCollection.Salt)

	require.False(t, policy.Consent.Required)
	require.Equal(t, domain.ConsentAllow, policy.Consent.DefaultBehavior)

	require.Equal(t, domain.DeploymentShared, policy.Deployment.Type)
	require.Empty(t, policy.Deployment.Hostname)

	require.Equal(t, true, policy.Features["heatmaps"])
	require.Equal(t, false, policy.Features["session_replay"])
}

func TestResolveNormalizesBeforeLookup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))
	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	for _, hostname := range []string{
		"Acme.COM",
		"acme.com.",
		"acme.com:8443",
		"https://acme.com/checkout",
	} {
		policy, err := resolver.Resolve(ctx, hostname)
		require.NoError(t, err, "hostname %q", hostname)
		require.Equal(t, c.ID, policy.ClientID)
	}

	// Subdomains are separate keys.
	_, err = resolver.Resolve(ctx, "shop.acme.com")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)
}

func TestResolveGDPRPolicyDerivation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	p := newClientParams("Euro Health")
	p.PrivacyLevel = domain.PrivacyGDPR
	c := mustCreateClient(t, clients, p)

	_, err := index.Put(ctx, "eurohealth.de", c.ID, true)
	require.NoError(t, err)

	policy, err := resolver.Resolve(ctx, "eurohealth.de")
	require.NoError(t, err)

	require.False(t, policy.IPCollection.Enabled)
	require.True(t, policy.IPCollection.HashRequired)
	require.NotEmpty(t, policy.IPCollection.Salt, "gdpr clients must receive their hashing salt")

	require.True(t, policy.Consent.Required)
	require.Equal(t, domain.ConsentBlock, policy.Consent.DefaultBehavior)
}

func TestResolveHIPAASharesGDPRIPHandling(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	p := newClientParams("Clinic Group")
	p.PrivacyLevel = domain.PrivacyHIPAA
	c := mustCreateClient(t, clients, p)

	_, err := index.Put(ctx, "clinicgroup.com", c.ID, true)
	require.NoError(t, err)

	policy, err := resolver.Resolve(ctx, "clinicgroup.com")
	require.NoError(t, err)
	require.Equal(t, domain.PrivacyHIPAA, policy.PrivacyLevel)
	require.False(t, policy.IPCollection.Enabled)
	require.True(t, policy.IPCollection.HashRequired)
	require.NotEmpty(t, policy.IPCollection.Salt)
	require.True(t, policy.Consent.Required)
}

func TestResolveDedicatedDeploymentCarriesHostname(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	p := newClientParams("Big Bank")
	p.DeploymentType = domain.DeploymentDedicated
	p.VMHostname = "bigbank-tracker.internal"
	c := mustCreateClient(t, clients, p)

	_, err := index.Put(ctx, "bigbank.com", c.ID, true)
	require.NoError(t, err)

	policy, err := resolver.Resolve(ctx, "bigbank.com")
	require.NoError(t, err)
	require.Equal(t, domain.DeploymentDedicated, policy.Deployment.Type)
	require.Equal(t, "bigbank-tracker.internal", policy.Deployment.Hostname)
}

func TestResolveUnknownDomain(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	resolver := &ResolverService{Store: st}

	_, err := resolver.Resolve(ctx, "nobody.example")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)
}

func TestResolveInvalidHostname(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	resolver := &ResolverService{Store: st}

	for _, hostname := range []string{"", "*.acme.com", "192.168.0.1", "bad host"} {
		_, err := resolver.Resolve(ctx, hostname)
		require.ErrorIs(t, err, domain.ErrInvalidDomain, "hostname %q", hostname)
	}
}

func TestResolveInactiveClientIndistinguishableFromUnknown(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Paused Corp"))
	_, err := index.Put(ctx, "paused.com", c.ID, true)
	require.NoError(t, err)

	_, err = clients.UpdateClient(ctx, c.ID, UpdateClientParams{
		Name:           c.Name,
		Owner:          c.Owner,
		ClientType:     c.ClientType,
		PrivacyLevel:   c.PrivacyLevel,
		DeploymentType: c.DeploymentType,
		IsActive:       false,
	})
	require.NoError(t, err)

	deactivated, err := resolver.Resolve(ctx, "paused.com")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)
	require.Zero(t, deactivated)

	unknown, err2 := resolver.Resolve(ctx, "never-registered.com")
	require.ErrorIs(t, err2, ErrUnauthorizedDomain)
	require.Zero(t, unknown)
}

func TestResolveGhostClientIsConsistencyFault(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	resolver := &ResolverService{Store: st}

	// Plant an index entry whose client never existed. The schema allows it
	// so the resolver, not the database, owns detection.
	err := st.Domains().CreateDomain(ctx, domain.DomainEntry{
		Domain:    "ghost.com",
		ClientID:  "01JGHOST00000000000000GONE",
		IsPrimary: true,
	})
	require.NoError(t, err)

	_, err = resolver.Resolve(ctx, "ghost.com")
	require.ErrorIs(t, err, ErrInconsistentIndex)
	require.NotErrorIs(t, err, ErrUnauthorizedDomain)
}

func TestResolveDedicatedWithoutHostnameIsConsistencyFault(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Busted Corp"))
	_, err := index.Put(ctx, "busted.com", c.ID, true)
	require.NoError(t, err)

	// Corrupt the record below the service layer; UpdateClient would
	// refuse this state.
	broken := c
	broken.DeploymentType = domain.DeploymentDedicated
	broken.VMHostname = ""
	require.NoError(t, st.Clients().UpdateClient(ctx, broken))

	_, err = resolver.Resolve(ctx, "busted.com")
	require.ErrorIs(t, err, ErrInconsistentIndex)
}

func TestResolveHashingClientWithoutSaltIsConsistencyFault(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	params := newClientParams("Saltless Corp")
	params.PrivacyLevel = domain.PrivacyGDPR
	c := mustCreateClient(t, clients, params)
	_, err := index.Put(ctx, "saltless.example", c.ID, true)
	require.NoError(t, err)

	// Strip the salt below the service layer; create and update always
	// generate one for hashing privacy levels.
	broken := c
	broken.IPSalt = ""
	require.NoError(t, st.Clients().UpdateClient(ctx, broken))

	_, err = resolver.Resolve(ctx, "saltless.example")
	require.ErrorIs(t, err, ErrInconsistentIndex)
	require.NotErrorIs(t, err, ErrUnauthorizedDomain)
}
