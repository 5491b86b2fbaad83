package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hireboard/internal/workflow"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hb")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, workflow.VariantExtended, cfg.Variant())
	assert.Equal(t, filepath.Join(dir, "hireboard.db"), cfg.DBPath)

	info, err := os.Stat(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HIREBOARD_API_URL", "https://jobs.example.com")
	t.Setenv("HIREBOARD_STATUS_VARIANT", "narrow")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com", cfg.APIURL)
	assert.Equal(t, workflow.VariantNarrow, cfg.Variant())
}

func TestSet(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Set(dir, "http_timeout", "3s"))
	require.NoError(t, Set(dir, "api_url", "https://jobs.example.com/"))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://jobs.example.com/", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestSetRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, Set(dir, "openai_key", "sk-1"))
	assert.Error(t, Set(dir, "api_url", "localhost"))
	assert.Error(t, Set(dir, "http_timeout", "soon"))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestDirHonorsEnv(t *testing.T) {
	t.Setenv("HIREBOARD_HOME", "/tmp/somewhere")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/somewhere", dir)
}
