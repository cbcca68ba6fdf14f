package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
)

func TestPutNormalizesAndStores(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))

	entry, err := index.Put(ctx, "HTTPS://Acme.COM:443/landing", c.ID, true)
	require.NoError(t, err)
	require.Equal(t, "acme.com", entry.Domain)
	require.Equal(t, c.ID, entry.ClientID)
	require.True(t, entry.IsPrimary)
	require.False(t, entry.CreatedAt.IsZero())
}

func TestPutRejectsUnknownClient(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	index := &DomainIndexService{Store: st}

	_, err := index.Put(ctx, "acme.com", "01JNOSUCHCLIENT0000000GONE", false)
	require.ErrorIs(t, err, ErrClientNotFound)

	// The failed put must not leave an entry behind.
	_, err = index.Get(ctx, "acme.com")
	require.ErrorIs(t, err, ErrDomainNotFound)
}

func TestPutIdempotentForSameClient(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))

	first, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	second, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)
	require.Equal(t, first, second)

	entries, err := index.ListForClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestPutConflictAcrossClients(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	owner := mustCreateClient(t, clients, newClientParams("Owner Corp"))
	rival := mustCreateClient(t, clients, newClientParams("Rival Corp"))

	_, err := index.Put(ctx, "contested.com", owner.ID, true)
	require.NoError(t, err)

	_, err = index.Put(ctx, "contested.com", rival.ID, false)
	require.ErrorIs(t, err, ErrDomainConflict)

	// Normalization cannot be used to sidestep the conflict check.
	_, err = index.Put(ctx, "Contested.COM.", rival.ID, false)
	require.ErrorIs(t, err, ErrDomainConflict)

	entry, err := index.Get(ctx, "contested.com")
	require.NoError(t, err)
	require.Equal(t, owner.ID, entry.ClientID)
}

func TestPutFirstDomainForcedPrimary(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))

	entry, err := index.Put(ctx, "acme.com", c.ID, false)
	require.NoError(t, err)
	require.True(t, entry.IsPrimary, "first domain becomes primary regardless of the flag")
}

func TestPutSecondPrimaryRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))

	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	_, err = index.Put(ctx, "acme.io", c.ID, true)
	require.ErrorIs(t, err, ErrPrimaryExists)

	// Non-primary additions are fine.
	extra, err := index.Put(ctx, "acme.io", c.ID, false)
	require.NoError(t, err)
	require.False(t, extra.IsPrimary)
}

func TestPutPrimaryHandover(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))

	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)
	_, err = index.Put(ctx, "acme.io", c.ID, false)
	require.NoError(t, err)

	// Demote the old primary explicitly, then promote the new one.
	demoted, err := index.Put(ctx, "acme.com", c.ID, false)
	require.NoError(t, err)
	require.False(t, demoted.IsPrimary)

	promoted, err := index.Put(ctx, "acme.io", c.ID, true)
	require.NoError(t, err)
	require.True(t, promoted.IsPrimary)

	entries, err := index.ListForClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "acme.io", entries[0].Domain, "primary sorts first")
}

func TestDeleteDomain(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}
	resolver := &ResolverService{Store: st}

	c := mustCreateClient(t, clients, newClientParams("Acme Corp"))
	_, err := index.Put(ctx, "acme.com", c.ID, true)
	require.NoError(t, err)

	require.NoError(t, index.Delete(ctx, "Acme.COM", c.ID))

	// Revocation is immediately visible to the resolver.
	_, err = resolver.Resolve(ctx, "acme.com")
	require.ErrorIs(t, err, ErrUnauthorizedDomain)

	require.ErrorIs(t, index.Delete(ctx, "acme.com", c.ID), ErrDomainNotFound)
}

func TestDeleteDomainOwnershipMismatch(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	clients := &ClientService{Store: st}
	index := &DomainIndexService{Store: st}

	owner := mustCreateClient(t, clients, newClientParams("Owner Corp"))
	rival := mustCreateClient(t, clients, newClientParams("Rival Corp"))

	_, err := index.Put(ctx, "contested.com", owner.ID, true)
	require.NoError(t, err)

	// A mismatch answers exactly like a miss and removes nothing.
	require.ErrorIs(t, index.Delete(ctx, "contested.com", rival.ID), ErrDomainNotFound)

	entry, err := index.Get(ctx, "contested.com")
	require.NoError(t, err)
	require.Equal(t, owner.ID, entry.ClientID)
}

func TestGetInvalidDomain(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	index := &DomainIndexService{Store: st}

	_, err := index.Get(ctx, "*.acme.com")
	require.ErrorIs(t, err, domain.ErrInvalidDomain)
}
