package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Local     LocalConfig     `yaml:"local"`
	Auth      AuthConfig      `yaml:"auth"`
	User      UserConfig      `yaml:"user"`
	Equipment []string        `yaml:"equipment"`
	Tailscale TailscaleConfig `yaml:"tailscale"`

	// Warnings collects non-fatal configuration problems, currently only
	// cloud credential issues. A non-empty list means local-only mode.
	Warnings []string `yaml:"-"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CloudConfig gates the cloud persistence backend. Both values must be set
// to real (non-placeholder) values for cloud mode; anything else downgrades
// to local-only with a warning rather than failing.
type CloudConfig struct {
	EndpointURL string `yaml:"endpoint_url"`
	AccessKey   string `yaml:"access_key"`
}

type LocalConfig struct {
	DataDir string `yaml:"data_dir"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type UserConfig struct {
	Username string `yaml:"username"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// CloudConfigured reports whether cloud persistence can be used.
func (c *Config) CloudConfigured() bool {
	return len(c.Warnings) == 0 && c.Cloud.EndpointURL != ""
}

// DSN returns the cloud connection string with the access key applied as the
// endpoint credential. Only meaningful when CloudConfigured is true.
func (c CloudConfig) DSN() (string, error) {
	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint URL: %w", err)
	}
	user := "betterfit"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.AccessKey)
	return u.String(), nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix BETTERFIT_ and underscore-separated
// paths:
//
//	BETTERFIT_SERVER_HOST, BETTERFIT_SERVER_PORT,
//	BETTERFIT_CLOUD_ENDPOINT_URL, BETTERFIT_CLOUD_ACCESS_KEY,
//	BETTERFIT_LOCAL_DATA_DIR, BETTERFIT_AUTH_API_KEY,
//	BETTERFIT_USER_USERNAME
//
// Missing or malformed cloud credentials are downgraded to warnings so the
// app stays usable in local-only mode.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	cfg.Warnings = cloudWarnings(cfg.Cloud)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BETTERFIT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BETTERFIT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BETTERFIT_CLOUD_ENDPOINT_URL"); v != "" {
		cfg.Cloud.EndpointURL = v
	}
	if v := os.Getenv("BETTERFIT_CLOUD_ACCESS_KEY"); v != "" {
		cfg.Cloud.AccessKey = v
	}
	if v := os.Getenv("BETTERFIT_LOCAL_DATA_DIR"); v != "" {
		cfg.Local.DataDir = v
	}
	if v := os.Getenv("BETTERFIT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("BETTERFIT_USER_USERNAME"); v != "" {
		cfg.User.Username = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Local.DataDir == "" {
		return fmt.Errorf("local.data_dir is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}

// cloudWarnings checks the cloud credentials and returns the problems
// found. Placeholder values count as unconfigured.
func cloudWarnings(cloud CloudConfig) []string {
	var warnings []string

	hasURL := cloud.EndpointURL != "" && !strings.Contains(cloud.EndpointURL, "your-project")
	hasKey := cloud.AccessKey != "" && cloud.AccessKey != "your-access-key"

	if !hasURL || !hasKey {
		warnings = append(warnings,
			"cloud credentials not configured; running in local-only mode. "+
				"Set cloud.endpoint_url and cloud.access_key to enable cloud persistence.")
		return warnings
	}

	u, err := url.Parse(cloud.EndpointURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		warnings = append(warnings, fmt.Sprintf("invalid cloud endpoint URL %q; running in local-only mode", cloud.EndpointURL))
	}
	return warnings
}
