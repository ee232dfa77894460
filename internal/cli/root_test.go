package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("GCADM_NO_KEYRING", "1")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GENESYS_CLIENT_ID", "")
	t.Setenv("GENESYS_CLIENT_SECRET", "")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestDemoModeWiresSimulator(t *testing.T) {
	require.NoError(t, execute(t, "--demo", "users", "get", "user-0000"))
	require.NoError(t, execute(t, "--demo", "queues", "list"))
	require.NoError(t, execute(t, "--demo", "doctor"))
}

func TestDemoModeNotFoundExitsWithError(t *testing.T) {
	err := execute(t, "--demo", "users", "get", "no-such-user")
	require.Error(t, err)
}

func TestNoCredentialsRequiresAuth(t *testing.T) {
	err := execute(t, "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials configured")
}

func TestStorageInfoWorksWithoutCredentials(t *testing.T) {
	require.NoError(t, execute(t, "storage", "info"))
}

func TestConfigRegionsWorksWithoutCredentials(t *testing.T) {
	require.NoError(t, execute(t, "config", "regions"))
}

func TestUnknownCommand(t *testing.T) {
	assert.Error(t, execute(t, "frobnicate"))
}
