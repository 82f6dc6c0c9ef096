package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
shards: 64
metrics:
  enabled: true
  address: ":9100"
log:
  to_stderr: false
  verbosity: 2
`))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Shards)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.Equal(t, "namedcache", cfg.Metrics.Namespace, "unset fields keep defaults")
	assert.False(t, cfg.Log.ToStderr)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, 64, cfg.StoreOptions().Shards)
}

func TestParseRejectsBadShards(t *testing.T) {
	for _, doc := range []string{"shards: 3", "shards: -1", "shards: 4096"} {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidShards, doc)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("shards: [1, 2"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shards: 8\n"), 0o600))

	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvMetricsAddr, "127.0.0.1:9999")
	t.Setenv(EnvLogV, "1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Shards)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Metrics.Address)
	assert.Equal(t, 1, cfg.Log.Verbosity)

	t.Setenv(EnvShards, "32")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Shards)

	t.Setenv(EnvShards, "many")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestApplyLogging(t *testing.T) {
	cfg := Default()
	cfg.Log.Verbosity = 2
	require.NoError(t, cfg.ApplyLogging())

	cfg.Log.Verbosity = 0
	require.NoError(t, cfg.ApplyLogging())
}
