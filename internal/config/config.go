// Package config loads the client configuration.
//
// Sources are layered, later ones winning:
//   - built-in defaults
//   - the YAML file (~/.unbound/config.yaml unless another is given)
//   - .env in the working directory
//   - process environment (UNBOUND_*, with NEXT_PUBLIC_API_URL as a fallback
//     for the API base)
//
// Command-line flags are applied on top by the caller, followed by Validate.
package config

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/storage"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "UNBOUND_"

// LegacyAPIURLVar is read when UNBOUND_API_URL is unset.
const LegacyAPIURLVar = "NEXT_PUBLIC_API_URL"

// Config is the effective client configuration.
type Config struct {
	// APIURL is the backend base, including the /api path.
	APIURL string `json:"api_url" yaml:"api_url" env:"API_URL"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" env:"REQUEST_TIMEOUT"`

	Storage storage.Config `json:"storage" yaml:"storage" envPrefix:"STORAGE_"`
	Log     LogConfig      `json:"log" yaml:"log" envPrefix:"LOG_"`

	// MetricsFile, when set, receives the run's Prometheus metrics.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" env:"METRICS_FILE"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:         gateway.DefaultBaseURL,
		RequestTimeout: gateway.DefaultTimeout,
		Storage:        storage.DefaultConfig(),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Dir returns ~/.unbound.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unbound"
	}
	return filepath.Join(home, ".unbound")
}

// DefaultFile returns the path of the default configuration file.
func DefaultFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// File is the YAML file to read. Empty means DefaultFile, which may be
	// absent; an explicitly named file must exist.
	File string

	// DotEnv lists dotenv files. Nil means ".env"; missing files are skipped.
	DotEnv []string

	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load builds the configuration from defaults, file and environment.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	file := opts.File
	required := file != ""
	if !required {
		file = DefaultFile()
	}
	if err := cfg.mergeFile(file, required); err != nil {
		return nil, err
	}

	environ, err := environment(opts)
	if err != nil {
		return nil, err
	}
	if environ[EnvPrefix+"API_URL"] == "" {
		if legacy := environ[LegacyAPIURLVar]; legacy != "" {
			environ[EnvPrefix+"API_URL"] = legacy
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to parse environment", err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && stderrors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to read config file %s", path), err).
			WithSuggestion("Run 'unbound config init' to create one")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return nil
}

// environment merges dotenv files under the real (or injected) environment.
func environment(opts LoadOptions) (map[string]string, error) {
	out := make(map[string]string)

	files := opts.DotEnv
	if files == nil {
		files = []string{".env"}
	}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			var pathErr *os.PathError
			if stderrors.As(err, &pathErr) {
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to load %s", f), err)
		}
		for k, v := range vals {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}

	base := opts.Environment
	if base == nil {
		base = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				base[k] = v
			}
		}
	}
	for k, v := range base {
		out[k] = v
	}
	return out, nil
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url %q must be an absolute http(s) URL", c.APIURL))
	}
	if c.RequestTimeout <= 0 {
		return errors.NewConfigInvalidError(fmt.Sprintf("request_timeout must be positive, got %s", c.RequestTimeout))
	}
	if _, err := storage.ParseBackend(c.Storage.Backend); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "console", "json":
	default:
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	return nil
}

// Save writes c as YAML to path, creating the directory. An existing file
// is only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("%s already exists", path)).
				WithSuggestion("Pass --force to overwrite it")
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, "failed to encode config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, "failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
