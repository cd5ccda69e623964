package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"noticias-cms/pkg/models"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	DefaultPath       = "noticias.yml"
	DefaultBackendURL = "https://tiagoifsp.ddns.net/noticias/"
	EnvPrefix         = "NOTICIAS_"
)

type GitHubConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

type Config struct {
	Addr           string               `koanf:"addr"`
	AppURL         string               `koanf:"app_url"`
	BackendURL     string               `koanf:"backend_url"`
	BackendTimeout time.Duration        `koanf:"backend_timeout"`
	SessionName    string               `koanf:"session_name"`
	SessionSecret  string               `koanf:"session_secret"`
	Debug          bool                 `koanf:"debug"`
	GitHub         GitHubConfig         `koanf:"github"`
	Notify         models.NotifyOptions `koanf:"notify"`
}

func Default() *Config {
	return &Config{
		Addr:           ":8080",
		AppURL:         "http://localhost:8080",
		BackendURL:     DefaultBackendURL,
		BackendTimeout: 10 * time.Second,
		SessionName:    "noticias",
		Notify:         models.DefaultNotifyOptions(),
	}
}

// Load reads .env, then layers the YAML file at path (if present) and
// NOTICIAS_* variables over the defaults. Nested keys use a double
// underscore: NOTICIAS_GITHUB__CLIENT_ID.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Unprefixed variables from older deployments sit below NOTICIAS_*.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.GitHub.RedirectURL == "" {
		cfg.GitHub.RedirectURL = strings.TrimSuffix(cfg.AppURL, "/") + "/auth/callback"
	}
	return cfg, nil
}

// legacyEnv maps the variable names older deployments set to config keys.
var legacyEnv = map[string]string{
	"SESSION_SECRET":       "session_secret",
	"APP_URL":              "app_url",
	"GITHUB_CLIENT_ID":     "github.client_id",
	"GITHUB_CLIENT_SECRET": "github.client_secret",
	"GITHUB_REDIRECT_URL":  "github.redirect_url",
}

func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend_url %q: scheme must be http or https", c.BackendURL)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("backend_timeout must be positive")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.GitHub.ClientID != "" && c.GitHub.ClientSecret == "" {
		return fmt.Errorf("github.client_secret is required when github.client_id is set")
	}
	return nil
}

// AuthEnabled reports whether the GitHub login gate is active.
func (c *Config) AuthEnabled() bool {
	return c.GitHub.ClientID != ""
}

// OAuth returns the GitHub OAuth configuration, or nil when login is disabled.
func (c *Config) OAuth() *oauth2.Config {
	if !c.AuthEnabled() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     c.GitHub.ClientID,
		ClientSecret: c.GitHub.ClientSecret,
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  c.GitHub.RedirectURL,
	}
}
