package config

import "time"

// Catalogfile represents the structure of the catalog.yaml configuration file.
type Catalogfile struct {
	Version     string   `yaml:"version"`
	BaseURL     string   `yaml:"base_url"`
	Paths       []string `yaml:"paths"`
	InferFolder *bool    `yaml:"infer_folder"`
	HTTP        HTTPDTO  `yaml:"http"`
}

// HTTPDTO represents the http section of the configuration.
type HTTPDTO struct {
	Timeout   string            `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
}

// envOverrides are read from the process environment after the file.
type envOverrides struct {
	BaseURL     *string        `env:"CATALOG_BASE_URL"`
	Timeout     *time.Duration `env:"CATALOG_HTTP_TIMEOUT"`
	UserAgent   *string        `env:"CATALOG_USER_AGENT"`
	InferFolder *bool          `env:"CATALOG_INFER_FOLDER"`
	Paths       []string       `env:"CATALOG_PATHS" envSeparator:","`
}
