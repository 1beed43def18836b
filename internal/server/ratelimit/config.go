package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. A Path ending in "/" matches every path under it.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Rule
	Rules           []Rule
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Denylist        map[string]bool
}

// DefaultRules limits the prediction endpoints more strictly than reads.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/health", Method: "GET"}, // unlimited
		{Path: "/predict", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/predict/stream", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/history", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// FromEnv builds a Config from environment lookups:
// RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, RATE_LIMIT_DEFAULT_WINDOW,
// RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_ALLOWLIST, RATE_LIMIT_DENYLIST.
func FromEnv(getenv func(string) string) Config {
	if !envBool(getenv, "RATE_LIMIT_ENABLED", true) {
		return Config{Enabled: false}
	}

	return Config{
		Enabled: true,
		Default: Rule{
			Limit:  envInt(getenv, "RATE_LIMIT_DEFAULT_LIMIT", 600),
			Window: envDuration(getenv, "RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		},
		Rules:           DefaultRules(),
		CleanupInterval: envDuration(getenv, "RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Allowlist:       parseIPList(getenv("RATE_LIMIT_ALLOWLIST")),
		Denylist:        parseIPList(getenv("RATE_LIMIT_DENYLIST")),
	}
}

// Match returns the rule for a request: an exact path match first, then the
// longest prefix rule, then the default.
func (c Config) Match(path, method string) Rule {
	var best *Rule
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method != method {
			continue
		}
		if r.Path == path {
			return *r
		}
		if strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			if best == nil || len(r.Path) > len(best.Path) {
				best = r
			}
		}
	}
	if best != nil {
		return *best
	}
	rule := c.Default
	rule.Path = "*"
	return rule
}

func envInt(getenv func(string) string, key string, fallback int) int {
	if n, err := strconv.Atoi(getenv(key)); err == nil {
		return n
	}
	return fallback
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	if b, err := strconv.ParseBool(getenv(key)); err == nil {
		return b
	}
	return fallback
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getenv(key)); err == nil {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
