package entity

import (
	"log/slog"
	"sort"
	"strings"
)

// Credentials maps a third-party provider name to its API key.
// They live for one resolve call only and must never reach a log line.
type Credentials map[string]string

// Compact drops blank secrets and returns nil when nothing is left
func (c Credentials) Compact() Credentials {
	var out Credentials
	for provider, secret := range c {
		if strings.TrimSpace(provider) == "" || strings.TrimSpace(secret) == "" {
			continue
		}
		if out == nil {
			out = make(Credentials, len(c))
		}
		out[provider] = secret
	}

	return out
}

// Providers returns the configured provider names in sorted order
func (c Credentials) Providers() []string {
	names := make([]string, 0, len(c))
	for provider := range c {
		names = append(names, provider)
	}
	sort.Strings(names)

	return names
}

// LogValue implements slog.LogValuer and only exposes provider names.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", len(c)),
		slog.Any("providers", c.Providers()),
	)
}

// String keeps secrets out of fmt output
func (c Credentials) String() string {
	return "Credentials[" + strings.Join(c.Providers(), ",") + "]"
}
