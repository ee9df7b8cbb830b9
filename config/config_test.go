package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evmctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadResolvesAliases(t *testing.T) {
	path := writeConfig(t, `
endpoints:
  mainnet: https://ethereum-rpc.publicnode.com
  sepolia: https://ethereum-sepolia.publicnode.com
defaults:
  timeout: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, time.Duration(cfg.Defaults.Timeout))

	resolved, err := cfg.Resolve("mainnet")
	require.NoError(t, err)
	require.Equal(t, "https://ethereum-rpc.publicnode.com", resolved)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_SEPOLIA_URL", "https://sepolia.example.org/v1/key")
	path := writeConfig(t, `
endpoints:
  sepolia: ${TEST_SEPOLIA_URL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	resolved, err := cfg.Resolve("sepolia")
	require.NoError(t, err)
	require.Equal(t, "https://sepolia.example.org/v1/key", resolved)
}

func TestLoadMissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Empty(t, cfg.Endpoints)

	// A URL still resolves to itself without a config file.
	resolved, err := cfg.Resolve("http://localhost:8545")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8545", resolved)
}

func TestLoadRejectsNonHTTPEndpoints(t *testing.T) {
	path := writeConfig(t, `
endpoints:
  bad: ws://localhost:8546
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected http or https")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
defaults:
  timeout: soon
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid duration")
}

func TestResolveUnknownAliasMustBeURL(t *testing.T) {
	cfg := &Config{Endpoints: map[string]string{}}

	_, err := cfg.Resolve("mainnet")
	require.Error(t, err)

	resolved, err := cfg.Resolve("https://example.org")
	require.NoError(t, err)
	require.Equal(t, "https://example.org", resolved)
}
