package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPATEnv names the environment variable consulted for the personal
// access token when the config file does not name one. The token itself is
// never read from the config file.
const DefaultPATEnv = "AZDO_PAT"

type Config struct {
	Organization OrganizationConfig `toml:"organization"`
	Server       ServerConfig       `toml:"server"`
	Logging      LoggingConfig      `toml:"logging"`
}

type OrganizationConfig struct {
	// URL is either a full organization URL or a bare organization name,
	// which is expanded against https://dev.azure.com/.
	URL    string `toml:"url"`
	PATEnv string `toml:"pat_env"`
}

type ServerConfig struct {
	HTTPBind    string `toml:"http_bind"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default() Config {
	return Config{
		Organization: OrganizationConfig{
			PATEnv: DefaultPATEnv,
		},
		Server: ServerConfig{
			HTTPBind:    "127.0.0.1:8080",
			MCPEndpoint: "/mcp",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	orgURL := strings.TrimSpace(c.Organization.URL)
	if orgURL != "" && strings.Contains(orgURL, "://") {
		parsed, err := url.Parse(orgURL)
		if err != nil {
			return fmt.Errorf("invalid organization.url: %w", err)
		}
		if parsed.Scheme != "https" && parsed.Scheme != "http" {
			return fmt.Errorf("invalid organization.url scheme: %q", parsed.Scheme)
		}
	}

	if strings.TrimSpace(c.Organization.PATEnv) == "" {
		return errors.New("organization.pat_env is required")
	}

	if strings.TrimSpace(c.Server.HTTPBind) == "" {
		return errors.New("server.http_bind is required")
	}
	endpoint := strings.TrimSpace(c.Server.MCPEndpoint)
	if endpoint == "" {
		return errors.New("server.mcp_endpoint is required")
	}
	if !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("server.mcp_endpoint must start with '/': %q", endpoint)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// OrganizationURL returns the fully-qualified organization URL, expanding a
// bare organization name against the hosted service base.
func (c Config) OrganizationURL() string {
	orgURL := strings.TrimSpace(c.Organization.URL)
	if orgURL == "" {
		return ""
	}
	if strings.Contains(orgURL, "://") {
		return strings.TrimRight(orgURL, "/")
	}
	return "https://dev.azure.com/" + orgURL
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
