package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for terramatch-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8470"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Operator holds the single studio login.
	Operator OperatorConfig `yaml:"operator"`

	// SessionSecret signs the operator session cookie.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET" env-default:"terramatch-dev-secret"`

	// Redis backs the products/projects collection store.
	Redis RedisConfig `yaml:"redis"`

	// AI holds the generative model endpoints for quote extraction and
	// visualization rendering.
	AI AIConfig `yaml:"ai"`
}

// OperatorConfig is the single hardcoded studio credential pair. The tool is
// single-operator; there is no user store behind this check.
type OperatorConfig struct {
	Email    string `yaml:"email" env:"OPERATOR_EMAIL" env-default:"admin@admin.fr"`
	Password string `yaml:"-" env:"OPERATOR_PASSWORD" env-default:"admin"`
	Name     string `yaml:"name" env:"OPERATOR_NAME" env-default:"Administrateur Studio"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Addr returns the host:port address for the Redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig holds the generative model settings. Provider selects the
// extraction client implementation; the visualization call always goes
// through the OpenAI-compatible multimodal endpoint.
type AIConfig struct {
	Provider        string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	Endpoint        string `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	ExtractionModel string `yaml:"extraction_model" env:"AI_EXTRACTION_MODEL" env-default:"gemini-3-flash-preview"`
	ImageModel      string `yaml:"image_model" env:"AI_IMAGE_MODEL" env-default:"gemini-3-pro-image-preview"`
	APIKey          string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
}

// HasCredential reports whether a usable API credential is configured.
// When false, AI calls must fail with a credential error before any
// network round-trip.
func (c *AIConfig) HasCredential() bool {
	return c.APIKey != ""
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config. Secrets (OPERATOR_PASSWORD, REDIS_PASSWORD, AI_API_KEY,
// SESSION_SECRET) come from environment variables only (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown ai provider %q (want openai or anthropic)", c.AI.Provider)
	}
	if c.Operator.Email == "" || c.Operator.Password == "" {
		return fmt.Errorf("operator credentials must not be empty")
	}
	return nil
}
