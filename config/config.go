package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultGeocodingBaseURL        = "https://nominatim.openstreetmap.org"
	defaultGeocodingUserAgent      = "GreenRouteSolutions/1.0"
	defaultGeocodingAcceptLanguage = "en-US,en"
	defaultGeocodingRPS            = 1.0
	defaultRecommendationURL       = "http://localhost:5050/get_route_recommendation"
	defaultCallTimeout             = 10 * time.Second
	defaultSessionIdleTTL          = 30 * time.Minute
	defaultMaxSessions             = 10000
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Geocoding configures the forward/reverse geocoding provider
	Geocoding *GeocodingConfig `json:"geocoding" yaml:"geocoding"`

	// Recommendation configures the route-recommendation backend
	Recommendation *RecommendationConfig `json:"recommendation" yaml:"recommendation"`

	// Vehicle is the profile used when a request does not carry one
	Vehicle *VehicleConfig `json:"vehicle" yaml:"vehicle"`

	Session *SessionConfig `json:"session" yaml:"session"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// GeocodingConfig defines the Nominatim-compatible geocoding provider
type GeocodingConfig struct {
	BaseURL        string        `json:"baseUrl" yaml:"baseUrl"`
	UserAgent      string        `json:"userAgent" yaml:"userAgent"`
	AcceptLanguage string        `json:"acceptLanguage" yaml:"acceptLanguage"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`

	// Provider usage policy; Nominatim allows at most one request per second
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
}

// RecommendationConfig defines the route-recommendation backend endpoint
type RecommendationConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// VehicleConfig is the default vehicle profile
type VehicleConfig struct {
	Type       string  `json:"type" yaml:"type"`
	Model      string  `json:"model" yaml:"model"`
	FuelType   string  `json:"fuelType" yaml:"fuelType"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
}

// SessionConfig controls how long an idle UI session keeps its last result
type SessionConfig struct {
	IdleTTL time.Duration `json:"idleTtl" yaml:"idleTtl"`

	// MaxSessions caps open sessions; the least recently used idle one is evicted first
	MaxSessions int `json:"maxSessions" yaml:"maxSessions"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override file values.
	// Example: GEOCODING_BASEURL -> geocoding.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills every optional section so downstream constructors never see nil
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Geocoding == nil {
		cfg.Geocoding = &GeocodingConfig{}
	}
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = defaultGeocodingBaseURL
	}
	if cfg.Geocoding.UserAgent == "" {
		cfg.Geocoding.UserAgent = defaultGeocodingUserAgent
	}
	if cfg.Geocoding.AcceptLanguage == "" {
		cfg.Geocoding.AcceptLanguage = defaultGeocodingAcceptLanguage
	}
	if cfg.Geocoding.Timeout <= 0 {
		cfg.Geocoding.Timeout = defaultCallTimeout
	}
	if cfg.Geocoding.RequestsPerSecond <= 0 {
		cfg.Geocoding.RequestsPerSecond = defaultGeocodingRPS
	}

	if cfg.Recommendation == nil {
		cfg.Recommendation = &RecommendationConfig{}
	}
	if cfg.Recommendation.URL == "" {
		cfg.Recommendation.URL = defaultRecommendationURL
	}
	if cfg.Recommendation.Timeout <= 0 {
		cfg.Recommendation.Timeout = defaultCallTimeout
	}

	if cfg.Vehicle == nil {
		cfg.Vehicle = &VehicleConfig{
			Type:       "gasoline_vehicle",
			Model:      "toyota_corolla",
			FuelType:   "gasoline",
			Efficiency: 15.0,
		}
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.IdleTTL <= 0 {
		cfg.Session.IdleTTL = defaultSessionIdleTTL
	}
	if cfg.Session.MaxSessions <= 0 {
		cfg.Session.MaxSessions = defaultMaxSessions
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
