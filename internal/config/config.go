// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

const (
	defaultGraphQLURL        = "http://magento-web/graphql"
	defaultStorefrontBaseURL = "http://localhost:8281"
	defaultTimeout           = 30 * time.Second
	defaultBreakerCooldown   = 30 * time.Second
)

// Config holds all service configuration.
// Environment determines whether commerce settings load from env vars
// (development) or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	StoreID    string

	Commerce CommerceConfig
}

// CommerceConfig describes the Magento backend and the public storefront.
type CommerceConfig struct {
	GraphQLURL        string
	StorefrontBaseURL string
	Timeout           time.Duration
	ChromeTLS         bool

	// BreakerFailures is the consecutive-failure threshold of the circuit
	// breaker; 0 disables it.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// commerceJSON is the wire form used by CONFIG_FILE and Secret Manager.
// Durations are Go duration strings ("30s").
type commerceJSON struct {
	GraphQLURL        string `json:"graphql_url"`
	StorefrontBaseURL string `json:"storefront_base_url"`
	Timeout           string `json:"timeout"`
	ChromeTLS         bool   `json:"chrome_tls"`
	BreakerFailures   uint32 `json:"breaker_failures"`
	BreakerCooldown   string `json:"breaker_cooldown"`
}

func (j commerceJSON) toConfig() (CommerceConfig, error) {
	c := CommerceConfig{
		GraphQLURL:        withDefault(strings.TrimSpace(j.GraphQLURL), defaultGraphQLURL),
		StorefrontBaseURL: withDefault(strings.TrimSpace(j.StorefrontBaseURL), defaultStorefrontBaseURL),
		ChromeTLS:         j.ChromeTLS,
		BreakerFailures:   j.BreakerFailures,
	}
	var err error
	if c.Timeout, err = parseDuration("timeout", j.Timeout, defaultTimeout); err != nil {
		return c, err
	}
	if c.BreakerCooldown, err = parseDuration("breaker_cooldown", j.BreakerCooldown, defaultBreakerCooldown); err != nil {
		return c, err
	}
	return c, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
	}

	// StoreID required in all environments
	if cfg.StoreID == "" {
		return nil, fmt.Errorf("STORE_ID environment variable required")
	}

	var err error
	if cfg.IsProduction() {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading commerce config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port        string       `json:"port"`
		Environment string       `json:"environment"`
		LogLevel    string       `json:"log_level"`
		GCPProject  string       `json:"gcp_project"`
		StoreID     string       `json:"store_id"`
		Commerce    commerceJSON `json:"commerce"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		GCPProject:  fileConfig.GCPProject,
		StoreID:     fileConfig.StoreID,
	}
	if cfg.StoreID == "" {
		return nil, fmt.Errorf("store_id is required")
	}

	if cfg.Commerce, err = fileConfig.Commerce.toConfig(); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches commerce config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	return c.applySecret(result.Payload.Data)
}

// applySecret decodes the Secret Manager payload into c.Commerce.
func (c *Config) applySecret(data []byte) error {
	var raw commerceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}
	commerce, err := raw.toConfig()
	if err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}
	c.Commerce = commerce
	return nil
}

// loadFromEnv reads commerce config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Commerce = CommerceConfig{
		GraphQLURL:        envOrDefault("COMMERCE_GRAPHQL_URL", defaultGraphQLURL),
		StorefrontBaseURL: envOrDefault("STOREFRONT_BASE_URL", defaultStorefrontBaseURL),
	}

	var err error
	if c.Commerce.Timeout, err = parseDuration("COMMERCE_TIMEOUT", os.Getenv("COMMERCE_TIMEOUT"), defaultTimeout); err != nil {
		return err
	}
	if c.Commerce.BreakerCooldown, err = parseDuration("COMMERCE_BREAKER_COOLDOWN", os.Getenv("COMMERCE_BREAKER_COOLDOWN"), defaultBreakerCooldown); err != nil {
		return err
	}

	if v := os.Getenv("COMMERCE_CHROME_TLS"); v != "" {
		if c.Commerce.ChromeTLS, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("parsing COMMERCE_CHROME_TLS: %w", err)
		}
	}
	if v := os.Getenv("COMMERCE_BREAKER_FAILURES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("parsing COMMERCE_BREAKER_FAILURES: %w", err)
		}
		c.Commerce.BreakerFailures = uint32(n)
	}

	return nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if err := validateURL("graphql_url", c.Commerce.GraphQLURL); err != nil {
		return err
	}
	if err := validateURL("storefront_base_url", c.Commerce.StorefrontBaseURL); err != nil {
		return err
	}
	if c.Commerce.Timeout <= 0 {
		return fmt.Errorf("commerce timeout must be positive")
	}
	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", name)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", name)
	}
	return nil
}

func parseDuration(name, raw string, defaultVal time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return d, nil
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
