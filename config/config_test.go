package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.StrictTableClaim)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.yaml")
	content := "port: \"9090\"\ndb_driver: mysql\ndb_dsn: user:pw@tcp(localhost:3306)/pos\nstrict_table_claim: false\nrequest_timeout: 3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "user:pw@tcp(localhost:3306)/pos", cfg.DBDSN)
	assert.False(t, cfg.StrictTableClaim)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("REQUEST_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}
