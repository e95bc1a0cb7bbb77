package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HARVEST_ACCESS_TOKEN", "HARVEST_ACCOUNT_ID", "HARVEST_BASE_URL", "HARVEST_MCP_DEBUG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HARVEST_MCP_CONFIG_HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, harvest.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.AccessToken)
	assert.False(t, cfg.Debug)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVEST_MCP_CONFIG_HOME", dir)
	clearEnv(t)

	content := "access_token: file-token\naccount_id: \"98765\"\ndebug: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.AccessToken)
	assert.Equal(t, "98765", cfg.AccountID)
	assert.True(t, cfg.Debug)
	assert.Equal(t, harvest.DefaultBaseURL, cfg.BaseURL)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVEST_MCP_CONFIG_HOME", dir)
	clearEnv(t)

	content := "access_token: file-token\naccount_id: \"98765\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))
	t.Setenv("HARVEST_ACCESS_TOKEN", "env-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, "98765", cfg.AccountID)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVEST_MCP_CONFIG_HOME", dir)
	clearEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("access_token: [\n"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "parsing")
}

func TestValidate(t *testing.T) {
	cfg := &Config{AccessToken: "t", AccountID: "1"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{AccountID: "1"}
	assert.ErrorContains(t, cfg.Validate(), "no access token")

	cfg = &Config{AccessToken: "t"}
	assert.ErrorContains(t, cfg.Validate(), "no account ID")

	cfg = &Config{}
	err := cfg.Validate()
	assert.ErrorContains(t, err, "no access token")
	assert.ErrorContains(t, err, "no account ID")
}

func TestClient_RequiresCredentials(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Client()
	assert.Error(t, err)
}

func TestClient(t *testing.T) {
	cfg := &Config{AccessToken: "t", AccountID: "1", BaseURL: "https://example.test/v2"}
	client, err := cfg.Client()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVEST_MCP_CONFIG_HOME", dir)
	clearEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "env"), []byte("HARVEST_ACCOUNT_ID=55555\n"), 0o600))
	t.Setenv("HARVEST_ACCESS_TOKEN", "already-set")

	LoadEnvFiles()
	assert.Equal(t, "55555", os.Getenv("HARVEST_ACCOUNT_ID"))
	assert.Equal(t, "already-set", os.Getenv("HARVEST_ACCESS_TOKEN"))
}
