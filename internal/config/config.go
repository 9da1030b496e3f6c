// Package config loads the lablink configuration file: credentials and base
// URLs for the two external services plus per-project device locations.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default service endpoints, overridable in the config file.
const (
	DefaultFieldwireAPIURL   = "https://client-api.us.fieldwire.com"
	DefaultFieldwireTokenURL = "https://client-api.super.fieldwire.com"
	DefaultAirthingsAPIURL   = "https://ext-api.airthings.com"
	DefaultAirthingsAccounts = "https://accounts-api.airthings.com"
)

// ErrNotFound is returned when the config file does not exist yet; callers
// point the user at "lablink init".
var ErrNotFound = errors.New("config file not found")

// Config is the on-disk configuration.
type Config struct {
	Fieldwire Fieldwire          `yaml:"fieldwire"`
	Airthings Airthings          `yaml:"airthings"`
	Projects  map[string]Project `yaml:"projects,omitempty"`
}

// Fieldwire holds task service credentials.
type Fieldwire struct {
	APIURL   string `yaml:"api_url,omitempty"`
	TokenURL string `yaml:"token_url,omitempty"`
	APIToken string `yaml:"api_token"`
}

// Airthings holds device service credentials.
type Airthings struct {
	APIURL       string `yaml:"api_url,omitempty"`
	AccountsURL  string `yaml:"accounts_url,omitempty"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AccountID    string `yaml:"account_id"`
}

// Project holds per-project settings.
type Project struct {
	// LocationID is the device service location new devices are
	// registered under for this project.
	LocationID string `yaml:"location_id"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s (run \"lablink init\")", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in the public service endpoints when omitted.
func (c *Config) applyDefaults() {
	if c.Fieldwire.APIURL == "" {
		c.Fieldwire.APIURL = DefaultFieldwireAPIURL
	}
	if c.Fieldwire.TokenURL == "" {
		c.Fieldwire.TokenURL = DefaultFieldwireTokenURL
	}
	if c.Airthings.APIURL == "" {
		c.Airthings.APIURL = DefaultAirthingsAPIURL
	}
	if c.Airthings.AccountsURL == "" {
		c.Airthings.AccountsURL = DefaultAirthingsAccounts
	}
}

// LocationID returns the device location configured for a project, or an
// error naming the missing key.
func (c *Config) LocationID(projectID string) (string, error) {
	p, ok := c.Projects[projectID]
	if !ok || p.LocationID == "" {
		return "", fmt.Errorf("no location_id configured for project %s", projectID)
	}
	return p.LocationID, nil
}

// scaffold is written by WriteScaffold for the user to fill in.
const scaffold = `# lablink configuration
fieldwire:
  api_token: ""
airthings:
  client_id: ""
  client_secret: ""
  account_id: ""
projects: {}
  # <project-id>:
  #   location_id: <airthings-location-id>
`

// WriteScaffold creates a commented starter config at path. It refuses to
// overwrite an existing file.
func WriteScaffold(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(scaffold), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
