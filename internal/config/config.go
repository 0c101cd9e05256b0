package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8585"`
	APIBaseURL   string `env:"API_BASE_URL"`
	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
	AuditDBPath  string `env:"AUDIT_DB_PATH" envDefault:"./audit.db"`
	TemplateDir  string `env:"TEMPLATE_DIR" envDefault:"templates"`

	CSRFKeyRaw    string `env:"CSRF_KEY"`
	SessionKeyRaw string `env:"SESSION_KEY"`

	CSRFKey    []byte `env:"-"`
	SessionKey []byte `env:"-"`
}

// Load reads configuration from the environment. The CSRF and session keys
// are base64; when missing or invalid a random development key is generated,
// which invalidates sessions on every restart.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.CSRFKey = loadKey("CSRF_KEY", cfg.CSRFKeyRaw)
	cfg.SessionKey = loadKey("SESSION_KEY", cfg.SessionKeyRaw)

	return cfg, nil
}

func loadKey(name, raw string) []byte {
	if raw == "" {
		slog.Warn("key not set, generating a random development key", "env", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("key invalid or shorter than 32 bytes, generating a random development key", "env", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the host is broken; there is nothing
		// sensible to fall back to.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return b
}
