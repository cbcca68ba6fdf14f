package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validClient() Client {
	return Client{
		ID:             "01J0000000000000000000TEST",
		Name:           "Acme Corp",
		Owner:          "acme",
		ClientType:     ClientTypeEndClient,
		PrivacyLevel:   PrivacyStandard,
		DeploymentType: DeploymentShared,
		IsActive:       true,
	}
}

func TestClientValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a minimal valid client", func(t *testing.T) {
		require.NoError(t, validClient().Validate())
	})

	t.Run("requires a name", func(t *testing.T) {
		c := validClient()
		c.Name = "   "
		require.ErrorIs(t, c.Validate(), ErrInvalidClient)
	})

	t.Run("rejects unknown enum values", func(t *testing.T) {
		c := validClient()
		c.ClientType = "reseller"
		require.ErrorIs(t, c.Validate(), ErrInvalidClient)

		c = validClient()
		c.PrivacyLevel = "ccpa"
		require.ErrorIs(t, c.Validate(), ErrInvalidClient)

		c = validClient()
		c.DeploymentType = "hybrid"
		require.ErrorIs(t, c.Validate(), ErrInvalidClient)
	})

	t.Run("dedicated deployment requires a vm hostname", func(t *testing.T) {
		c := validClient()
		c.DeploymentType = DeploymentDedicated
		require.ErrorIs(t, c.Validate(), ErrInvalidClient)

		c.VMHostname = "tracker-vm-01.internal"
		require.NoError(t, c.Validate())
	})
}

func TestPrivacyLevelRequiresIPHashing(t *testing.T) {
	t.Parallel()

	require.False(t, PrivacyStandard.RequiresIPHashing())
	require.True(t, PrivacyGDPR.RequiresIPHashing())
	require.True(t, PrivacyHIPAA.RequiresIPHashing())
}
