package domain

import "time"

const (
	// ConfigFileName is the name of the catalog configuration file.
	ConfigFileName = "catalog.yaml"

	// ConfigVersion is the only supported configuration file version.
	ConfigVersion = "1"

	// DefaultManifestPath is requested when neither the command line nor the config names a manifest.
	DefaultManifestPath = "/manifest.json"

	// DefaultHTTPTimeout bounds a single manifest request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies catalog requests.
	DefaultUserAgent = "catalog"
)

// Config is the resolved catalog configuration.
type Config struct {
	// BaseURL is prepended to every manifest path that is not already absolute.
	BaseURL string
	// Paths is the manifest set loaded when none is given explicitly.
	Paths []string
	// InferFolder makes entries without a folder default to the manifest's directory.
	InferFolder bool
	HTTP        HTTPConfig
}

// HTTPConfig configures manifest requests.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Paths: []string{DefaultManifestPath},
		HTTP: HTTPConfig{
			Timeout:   DefaultHTTPTimeout,
			UserAgent: DefaultUserAgent,
		},
	}
}
