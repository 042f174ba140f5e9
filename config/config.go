package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"

	ModelKindArtifact = "artifact"
	ModelKindRemote   = "remote"
)

type Config struct {
	App    AppConfig    `yaml:"app"`
	Server ServerConfig `yaml:"server"`
	Model  ModelConfig  `yaml:"model"`
	Log    LogConfig    `yaml:"log"`
	Sentry SentryConfig `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

// ModelConfig selects the forecast model. Timeout is in seconds and applies to remote models.
// RateLimit is in calls per second; zero disables limiting.
type ModelConfig struct {
	Kind         string  `yaml:"kind" split_words:"true"`
	ArtifactPath string  `yaml:"artifact_path" split_words:"true"`
	RemoteURL    string  `yaml:"remote_url" split_words:"true"`
	Timeout      int     `yaml:"timeout" split_words:"true"`
	RateLimit    float64 `yaml:"rate_limit" split_words:"true"`
	RateBurst    int     `yaml:"rate_burst" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers a YAML file and the environment over built-in defaults.
// A missing file is not an error.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// NewConfig loads config from CONFIG_PATH, or config/config.yaml when unset.
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var errs []error

	if config.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}
	if config.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if config.Server.ReadTimeout < 0 || config.Server.WriteTimeout < 0 || config.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}

	switch config.Model.Kind {
	case ModelKindArtifact:
		if config.Model.ArtifactPath == "" {
			errs = append(errs, errors.New("model.artifact_path is required for artifact models"))
		}
	case ModelKindRemote:
		if config.Model.RemoteURL == "" {
			errs = append(errs, errors.New("model.remote_url is required for remote models"))
		}
	default:
		errs = append(errs, fmt.Errorf("model.kind %q is not supported", config.Model.Kind))
	}
	if config.Model.RateLimit < 0 {
		errs = append(errs, errors.New("model.rate_limit must not be negative"))
	}
	if config.Model.RateLimit > 0 && config.Model.RateBurst < 1 {
		errs = append(errs, errors.New("model.rate_burst must be at least 1 when rate limiting"))
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if config.Log.Format != "json" && config.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", config.Log.Format))
	}

	return errors.Join(errs...)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "oil-forecast",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Model: ModelConfig{
			Kind:         ModelKindArtifact,
			ArtifactPath: "artifacts/oil_price_model.json",
			Timeout:      30,
			RateBurst:    1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
