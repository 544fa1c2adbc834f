package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://api.themoviedb.org", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.ConnectTimeout)
	assert.Equal(t, 3*time.Second, cfg.Catalog.ReadTimeout)
	assert.True(t, cfg.Refresh.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Refresh.Interval)
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nDB_NAME=favorites\nREFRESH_INTERVAL=15m\nTMDB_READ_TIMEOUT=5s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_NAME", "from_env")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, 15*time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, 5*time.Second, cfg.Catalog.ReadTimeout)
}

func TestCredentials(t *testing.T) {
	t.Setenv("TMDB_API_KEY_V3", "")
	t.Setenv("TMDB_API_KEY_V4", "")

	path := filepath.Join(t.TempDir(), "credentials.properties")
	require.NoError(t, os.WriteFile(path, []byte("TMDB_API_KEY_V3=abc123\nTMDB_API_KEY_V4=eyJhbGciOi\n"), 0o600))

	creds := NewCredentials(path)
	v3, err := creds.V3Key()
	require.NoError(t, err)
	assert.Equal(t, "abc123", v3)

	v4, err := creds.V4Key()
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi", v4)

	// loaded once; later file changes are not observed
	require.NoError(t, os.WriteFile(path, []byte("TMDB_API_KEY_V3=changed\n"), 0o600))
	v3, err = creds.V3Key()
	require.NoError(t, err)
	assert.Equal(t, "abc123", v3)
}

func TestCredentials_EnvOverride(t *testing.T) {
	t.Setenv("TMDB_API_KEY_V3", "from-env")
	t.Setenv("TMDB_API_KEY_V4", "")

	creds := NewCredentials(filepath.Join(t.TempDir(), "absent.properties"))
	v3, err := creds.V3Key()
	require.NoError(t, err)
	assert.Equal(t, "from-env", v3)

	v4, err := creds.V4Key()
	require.NoError(t, err)
	assert.Empty(t, v4)
}
