package gatekeep_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/pkg/gatesdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := gatesdk.NewSDKClient(baseURL)

	t.Run("livez", func(t *testing.T) {
		health, err := sdk.Livez(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.NotEmpty(t, health.Version)
	})

	t.Run("readyz includes database check", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var health gatesdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t)
	defer cleanup()

	ctx := context.Background()
	sdk := gatesdk.NewSDKClient(baseURL)

	// Generate one unauthorized resolve so the counter exists.
	_, err := sdk.Resolve(ctx, "metrics-probe.example")
	require.Error(t, err)

	resp, err := http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "gatekeep_resolve_total")
	require.Contains(t, string(body), `outcome="unauthorized"`)
}

func TestRateLimitOnResolve(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := &http.Client{}

	// Burn through the public burst. Defaults allow 1000; stop at the first
	// 429 so the test doesn't depend on the exact ceiling.
	var limited bool
	for i := 0; i < 1100; i++ {
		resp, err := client.Get(baseURL + "/v1/resolve/ratelimit-probe.example")
		require.NoError(t, err)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			require.NotEmpty(t, resp.Header.Get("Retry-After"))
			limited = true
			break
		}
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	require.True(t, limited, "resolve endpoint never rate limited")
}
