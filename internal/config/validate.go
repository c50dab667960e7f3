package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/glossary/internal/wordlist"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}

	if err := c.Glossary.validate(); err != nil {
		return fmt.Errorf("glossary: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be > 0 (got %d)", c.RateLimit.Burst)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (g *GlossaryConfig) validate() error {
	g.BaselineSources = ParseList(g.BaselineSourcesRaw)
	if len(g.BaselineSources) == 0 {
		return fmt.Errorf("baseline_sources must name at least one source")
	}
	g.RefreshSources = ParseList(g.RefreshSourcesRaw)

	if _, err := wordlist.ParseEncoding(g.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if g.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", g.CacheSize)
	}
	if g.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", g.FetchTimeout)
	}
	if g.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must be >= 0 (got %v)", g.RefreshInterval)
	}
	if g.RefreshInterval > 0 && len(g.RefreshSources) == 0 {
		return fmt.Errorf("refresh_interval is set but no refresh_sources are configured")
	}
	return nil
}

// ParseList splits a comma-separated string into trimmed, non-empty items.
// An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
	}
	return items
}
