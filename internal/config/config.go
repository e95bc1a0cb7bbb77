package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// FileName is the config file looked up inside Dir().
const FileName = "config.yaml"

// Config holds everything harvest-mcp needs to talk to the API.
// Sources are merged in order: defaults, then the yaml config file,
// then the environment. The environment always wins.
type Config struct {
	AccessToken string `yaml:"access_token" env:"HARVEST_ACCESS_TOKEN"`
	AccountID   string `yaml:"account_id"   env:"HARVEST_ACCOUNT_ID"`
	BaseURL     string `yaml:"base_url"     env:"HARVEST_BASE_URL"`
	Debug       bool   `yaml:"debug"        env:"HARVEST_MCP_DEBUG"`
}

// Load builds the configuration from the config file and the
// environment. A missing config file is not an error; a malformed one
// is.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL: harvest.DefaultBaseURL,
	}

	path := filepath.Join(Dir(), FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that the credentials needed for API calls are
// present.
func (c *Config) Validate() error {
	var problems []error
	if c.AccessToken == "" {
		problems = append(problems, errors.New("no access token: set HARVEST_ACCESS_TOKEN or access_token in "+FileName+" (create one at https://id.getharvest.com/developers)"))
	}
	if c.AccountID == "" {
		problems = append(problems, errors.New("no account ID: set HARVEST_ACCOUNT_ID or account_id in "+FileName))
	}
	return errors.Join(problems...)
}

// Client builds a harvest API client from the configuration.
func (c *Config) Client(opts ...harvest.Option) (*harvest.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.BaseURL != "" && c.BaseURL != harvest.DefaultBaseURL {
		opts = append([]harvest.Option{harvest.WithBaseURL(c.BaseURL)}, opts...)
	}
	return harvest.New(c.AccessToken, c.AccountID, opts...)
}

// LoadEnvFiles loads .env files before the environment is read.
// Lookup order: ./.env.local, ./.env, <configdir>/env. Variables
// already present in the environment are never overridden.
func LoadEnvFiles() {
	for _, path := range []string{".env.local", ".env", filepath.Join(Dir(), "env")} {
		// godotenv errors on missing files; absence is the normal case.
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}
