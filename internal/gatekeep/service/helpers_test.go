package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newClientParams(name string) NewClientParams {
	return NewClientParams{
		Name:           name,
		Owner:          "ops",
		ClientType:     domain.ClientTypeEndClient,
		PrivacyLevel:   domain.PrivacyStandard,
		DeploymentType: domain.DeploymentShared,
	}
}

func mustCreateClient(t *testing.T, svc *ClientService, p NewClientParams) domain.Client {
	t.Helper()

	c, err := svc.CreateClient(context.Background(), p)
	require.NoError(t, err)
	return c
}
