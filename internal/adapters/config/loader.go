// Package config provides the configuration loader for catalog.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	Logger ports.Logger

	fs      FileSystem
	environ map[string]string
}

// NewLoader creates a new Loader reading the real filesystem and process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, fs: NewOSFS()}
}

// NewLoaderWithFS creates a Loader over the given filesystem and environment.
// A nil environ means the process environment.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem, environ map[string]string) *Loader {
	return &Loader{Logger: logger, fs: fsys, environ: environ}
}

// Load resolves the configuration for cwd.
//
// The nearest catalog.yaml in cwd or any parent is applied over the defaults, then
// CATALOG_* environment variables are applied over the file.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if configPath, ok := l.findConfiguration(cwd); ok {
		if err := l.applyFile(cfg, configPath); err != nil {
			return nil, zerr.With(err, "config_path", configPath)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.HTTP.Timeout < 0 {
		return nil, zerr.With(domain.ErrInvalidHTTPTimeout, "timeout", cfg.HTTP.Timeout.String())
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{domain.DefaultManifestPath}
	}

	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) applyFile(cfg *domain.Config, configPath string) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file Catalogfile
	if parseErr := yaml.Unmarshal(data, &file); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	switch file.Version {
	case domain.ConfigVersion:
	case "":
		l.Logger.Warn("no version set in " + domain.ConfigFileName + ", assuming version " + domain.ConfigVersion)
	default:
		return zerr.With(domain.ErrUnsupportedConfigVersion, "version", file.Version)
	}

	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if len(file.Paths) > 0 {
		cfg.Paths = file.Paths
	}
	if file.InferFolder != nil {
		cfg.InferFolder = *file.InferFolder
	}
	if file.HTTP.Timeout != "" {
		timeout, err := time.ParseDuration(file.HTTP.Timeout)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "http.timeout")
		}
		cfg.HTTP.Timeout = timeout
	}
	if file.HTTP.UserAgent != "" {
		cfg.HTTP.UserAgent = file.HTTP.UserAgent
	}
	if len(file.HTTP.Headers) > 0 {
		cfg.HTTP.Headers = file.HTTP.Headers
	}

	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	opts := env.Options{Environment: l.environ}
	if l.environ == nil {
		opts.Environment = env.ToMap(os.Environ())
	}

	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return zerr.Wrap(err, domain.ErrConfigEnvFailed.Error())
	}

	if overrides.BaseURL != nil {
		cfg.BaseURL = *overrides.BaseURL
	}
	if overrides.Timeout != nil {
		cfg.HTTP.Timeout = *overrides.Timeout
	}
	if overrides.UserAgent != nil {
		cfg.HTTP.UserAgent = *overrides.UserAgent
	}
	if overrides.InferFolder != nil {
		cfg.InferFolder = *overrides.InferFolder
	}
	if len(overrides.Paths) > 0 {
		cfg.Paths = overrides.Paths
	}

	return nil
}
