// Package config provides OAuth client configuration loading.
//
// Credentials are discovered from environment variables first, then from a
// local JSON config file. Explicit construction (e.g. from values typed into
// a login prompt) bypasses discovery entirely.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvPrefix is the prefix for credential environment variables.
const EnvPrefix = "GENESYS"

// DefaultRegion is used when no region is configured.
const DefaultRegion = "mypurecloud.com"

// Source indicates where the configuration came from.
type Source string

const (
	SourceEnv    Source = "environment"
	SourceFile   Source = "file"
	SourceManual Source = "manual"
	SourceStored Source = "stored" // retrieved from the encrypted secret store
)

// Config holds OAuth client credentials and the target region.
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Region       string `json:"region"`

	// Source records where these values came from (for diagnostics).
	Source Source `json:"-"`
}

// LoginURL returns the identity endpoint base for the configured region.
func (c *Config) LoginURL() string {
	return "https://login." + c.Region
}

// APIURL returns the resource API base for the configured region.
func (c *Config) APIURL() string {
	return "https://api." + c.Region
}

// New creates a Config from explicit values.
func New(clientID, clientSecret, region string) *Config {
	if region == "" {
		region = DefaultRegion
	}
	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Region:       region,
		Source:       SourceManual,
	}
}

// Load discovers credentials, checking environment variables first and the
// JSON config file second. Returns nil when neither source has a complete
// client id + secret pair.
func Load(path string) *Config {
	if cfg := fromEnv(); cfg != nil {
		return cfg
	}
	return fromFile(path)
}

func fromEnv() *Config {
	clientID := os.Getenv(EnvPrefix + "_CLIENT_ID")
	clientSecret := os.Getenv(EnvPrefix + "_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil
	}

	region := os.Getenv(EnvPrefix + "_REGION")
	if region == "" {
		region = DefaultRegion
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Region:       region,
		Source:       SourceEnv,
	}
}

func fromFile(path string) *Config {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return nil
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	cfg.Source = SourceFile

	return &cfg
}

// Save writes the configuration to the given path (0600, JSON).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultPath returns the default config file location
// (~/.config/gcadm/config.json, honoring XDG_CONFIG_HOME).
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "gcadm", "config.json")
}
