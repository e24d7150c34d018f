package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/inference"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when the inference token is not set
var ErrMissingCredential = errors.New("inference credential not found")

// Credential environment variables per provider
const (
	HuggingFaceTokenEnv = "HF_API_TOKEN"
	GeminiKeyEnv        = "GEMINI_API_KEY"
)

// Config holds all configuration for the assistant service
type Config struct {
	// Server
	Port         string
	Environment  string
	WriteTimeout time.Duration

	// Inference
	Provider   inference.ProviderType
	BaseURL    string
	Credential string
	Models     content.ModelSet

	// Event bus
	NATSURL           string
	NATSSubjectPrefix string

	// Telemetry
	TelemetryEnabled bool
	OTLPEndpoint     string
}

// Load reads configuration from the environment, after merging an optional .env file.
// A missing credential is an error; callers treat it as fatal.
func Load() (*Config, error) {
	dotenvPath := getEnv("DOTENV_PATH", ".env")
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
	}

	provider := inference.ProviderType(getEnv("INFERENCE_PROVIDER", string(inference.ProviderHuggingFace)))
	if !slices.Contains(inference.SupportedProviders, string(provider)) {
		return nil, fmt.Errorf("unsupported INFERENCE_PROVIDER %q", provider)
	}

	writeTimeout, err := getEnvDuration("SERVER_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}

	telemetryEnabled, err := getEnvBool("OTEL_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("GO_ENV", "development"),
		WriteTimeout:      writeTimeout,
		Provider:          provider,
		BaseURL:           getEnv("INFERENCE_BASE_URL", ""),
		NATSURL:           getEnv("NATS_URL", ""),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "gm.generation"),
		TelemetryEnabled:  telemetryEnabled,
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}

	switch provider {
	case inference.ProviderGemini:
		cfg.Credential = os.Getenv(GeminiKeyEnv)
		cfg.Models = content.ModelSet{
			Conversational: getEnv("CONVERSATIONAL_MODEL", inference.DefaultGeminiConversationalModel),
			Instruct:       getEnv("INSTRUCT_MODEL", inference.DefaultGeminiInstructModel),
		}
	default:
		cfg.Credential = os.Getenv(HuggingFaceTokenEnv)
		cfg.BaseURL = getEnv("INFERENCE_BASE_URL", inference.DefaultHuggingFaceURL)
		cfg.Models = content.ModelSet{
			Conversational: getEnv("CONVERSATIONAL_MODEL", content.DefaultConversationalModel),
			Instruct:       getEnv("INSTRUCT_MODEL", content.DefaultInstructModel),
		}
	}

	if cfg.Credential == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, cfg.CredentialEnv())
	}

	if cfg.Models.Conversational == cfg.Models.Instruct {
		return nil, fmt.Errorf("CONVERSATIONAL_MODEL and INSTRUCT_MODEL must differ, both are %q", cfg.Models.Instruct)
	}

	return cfg, nil
}

// CredentialEnv names the environment variable holding the credential for the configured provider
func (c *Config) CredentialEnv() string {
	if c.Provider == inference.ProviderGemini {
		return GeminiKeyEnv
	}
	return HuggingFaceTokenEnv
}

// ProviderConfig returns the gateway settings
func (c *Config) ProviderConfig() inference.ProviderConfig {
	return inference.ProviderConfig{
		Type:    c.Provider,
		BaseURL: c.BaseURL,
		APIKey:  c.Credential,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
