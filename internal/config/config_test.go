package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/protocompat/internal/config"
	"github.com/aretw0/protocompat/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Rounds)
	assert.Equal(t, "result.txt", cfg.Output)
	assert.Equal(t, "none", cfg.LogLevel)
	assert.True(t, cfg.Banner)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "protocompat.yaml", `
rounds: 5
weighting: matching
banner: false
store:
  driver: redis
  prefix: "ci:"
  ttl: 2h
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Rounds)
	assert.Equal(t, "matching", cfg.Weighting)
	assert.False(t, cfg.Banner)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.Addr, "untouched fields keep defaults")

	ttl, err := cfg.Store.TTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, ttl)
}

func TestLoad_JSON(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "cfg.json", `{"rounds": 3, "format": "markdown"}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Rounds)
	assert.Equal(t, "markdown", cfg.Format)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"negative.yaml": "rounds: -1\n",
		"driver.yaml":   "store:\n  driver: postgres\n",
		"ttl.yaml":      "store:\n  ttl: soon\n",
		"syntax.yaml":   "rounds: [\n",
	} {
		_, err := config.Load(testutils.WriteFile(t, dir, name, body))
		assert.Error(t, err, name)
	}
}
