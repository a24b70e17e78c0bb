package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL       = "https://garg-hot-web.onrender.com/api"
	DefaultAPITimeout   = 30 * time.Second
	DefaultCacheTTL     = 5 * time.Minute
	DefaultStoreDSN     = "garghot.db"
	DefaultPort         = "8080"
	DefaultPollInterval = 30 * time.Second
)

// Config holds everything the client, the CLI and the local server need.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Firebase FirebaseConfig `yaml:"firebase"`
}

type APIConfig struct {
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port               string        `yaml:"port"`
	JWTSecret          string        `yaml:"jwt_secret"`
	AdminAPIKey        string        `yaml:"admin_api_key"`
	ProxyTarget        string        `yaml:"proxy_target"`
	OrdersPollInterval time.Duration `yaml:"orders_poll_interval"`
	AllowOrigins       []string      `yaml:"allow_origins"`
}

type FirebaseConfig struct {
	APIKey          string `yaml:"api_key"`
	ProjectID       string `yaml:"project_id"`
	CredentialsJSON string `yaml:"credentials_json"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:      DefaultAPIURL,
			Timeout:  DefaultAPITimeout,
			CacheTTL: DefaultCacheTTL,
		},
		Store: StoreConfig{DSN: DefaultStoreDSN},
		Server: ServerConfig{
			Port:               DefaultPort,
			OrdersPollInterval: DefaultPollInterval,
			AllowOrigins:       []string{"*"},
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file at
// path, then the environment (a local .env is loaded first when present).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.API.URL, "API_URL")
	setString(&c.Store.DSN, "STORE_DSN")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.JWTSecret, "JWT_SECRET")
	setString(&c.Server.AdminAPIKey, "COST_API_KEY")
	setString(&c.Server.ProxyTarget, "PROXY_TARGET")
	setString(&c.Firebase.APIKey, "FIREBASE_API_KEY")
	setString(&c.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	setString(&c.Firebase.CredentialsJSON, "FIREBASE_CREDENTIALS_JSON")

	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = strings.Split(v, ",")
	}

	for key, dst := range map[string]*time.Duration{
		"API_TIMEOUT":          &c.API.Timeout,
		"CACHE_TTL":            &c.API.CacheTTL,
		"ORDERS_POLL_INTERVAL": &c.Server.OrdersPollInterval,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("90s") or a bare number of seconds.
func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

// Validate checks the settings the local server cannot run without.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return errors.New("api url is required")
	}
	if c.Server.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}
