package config

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "AUDIT_DB_PATH", "TEMPLATE_DIR", "COOKIE_SECURE", "CSRF_KEY", "SESSION_KEY"} {
		t.Setenv(k, "") // register restore
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "./audit.db", cfg.AuditDBPath)
	assert.Equal(t, "templates", cfg.TemplateDir)
	assert.False(t, cfg.CookieSecure)
	// Missing keys fall back to generated ones.
	assert.Len(t, cfg.CSRFKey, 32)
	assert.Len(t, cfg.SessionKey, 32)
}

func TestLoadFromEnvironment(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "http://api.test/name-lab/api")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_KEY", key)
	t.Setenv("CSRF_KEY", key)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://api.test/name-lab/api", cfg.APIBaseURL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), cfg.SessionKey)
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), cfg.CSRFKey)
}

func TestShortKeyIsReplaced(t *testing.T) {
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString([]byte("too-short")))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.SessionKey, 32)
	assert.NotEqual(t, []byte("too-short"), cfg.SessionKey)
}

func TestInvalidBase64KeyIsReplaced(t *testing.T) {
	t.Setenv("CSRF_KEY", "%%% not base64 %%%")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.CSRFKey, 32)
}
