package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"geocoding": map[string]any{
			"baseUrl":           "",
			"userAgent":         "",
			"requestsPerSecond": 1,
		},
		"recommendation": map[string]any{
			"url": "",
		},
		"session": map[string]any{
			"idleTtl": "30m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "GEOCODING_BASEURL", want: "geocoding.baseUrl"},
		{envKey: "GEOCODING_USERAGENT", want: "geocoding.userAgent"},
		{envKey: "GEOCODING_REQUESTSPERSECOND", want: "geocoding.requestsPerSecond"},
		{envKey: "RECOMMENDATION_URL", want: "recommendation.url"},
		{envKey: "SESSION_IDLETTL", want: "session.idleTtl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
	assert.Equal(t, "GreenRouteSolutions/1.0", cfg.Geocoding.UserAgent)
	assert.Equal(t, "en-US,en", cfg.Geocoding.AcceptLanguage)
	assert.Equal(t, 10*time.Second, cfg.Geocoding.Timeout)
	assert.Equal(t, 1.0, cfg.Geocoding.RequestsPerSecond)
	assert.Equal(t, "http://localhost:5050/get_route_recommendation", cfg.Recommendation.URL)
	assert.Equal(t, 10*time.Second, cfg.Recommendation.Timeout)
	assert.Equal(t, "toyota_corolla", cfg.Vehicle.Model)
	assert.Equal(t, 15.0, cfg.Vehicle.Efficiency)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 10000, cfg.Session.MaxSessions)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Geocoding:      &GeocodingConfig{BaseURL: "http://geo.local", Timeout: 3 * time.Second},
		Recommendation: &RecommendationConfig{URL: "http://backend.local/route"},
		Session:        &SessionConfig{MaxSessions: 2},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "http://geo.local", cfg.Geocoding.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Geocoding.Timeout)
	assert.Equal(t, "http://backend.local/route", cfg.Recommendation.URL)
	assert.Equal(t, 2, cfg.Session.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
}
