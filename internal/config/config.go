package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Development fallbacks for the token signing secrets. Fine for local
// work; refusing to start with these in production is enforced below.
const (
	devAccessSecret  = "dev-access-token-secret"
	devRefreshSecret = "dev-refresh-token-secret"
)

type Config struct {
	Port   string
	Env    string // "development" or "production"
	DBPath string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	// Built-in admin identity used when the store is unreachable.
	AdminEmail    string
	AdminPassword string
	AdminName     string

	UploadDir    string
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8686"),
		Env:                getEnv("APP_ENV", "development"),
		DBPath:             getEnv("DB_PATH", "./sing4you.db"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", devAccessSecret),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", devRefreshSecret),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminName:          getEnv("ADMIN_NAME", "Administrator"),
		UploadDir:          getEnv("UPLOAD_DIR", "./static/uploads"),
		CookieDomain:       getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:       getEnv("COOKIE_SECURE", "false") == "true",
	}

	var err error
	cfg.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate refuses placeholder signing secrets in production. A weak
// secret would let anyone mint admin tokens, so this is fatal rather
// than a warning.
func (c *Config) validate() error {
	if c.IsProduction() {
		if c.AccessTokenSecret == "" || c.AccessTokenSecret == devAccessSecret {
			return fmt.Errorf("ACCESS_TOKEN_SECRET must be set to a strong value in production")
		}
		if c.RefreshTokenSecret == "" || c.RefreshTokenSecret == devRefreshSecret {
			return fmt.Errorf("REFRESH_TOKEN_SECRET must be set to a strong value in production")
		}
		if c.AccessTokenSecret == c.RefreshTokenSecret {
			return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
		}
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
