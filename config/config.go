package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BaseURLEnv names the environment variable holding the API base URL.
const BaseURLEnv = "PARKING_API_BASE_URL"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Client     ClientConfig     `yaml:"client"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	PublicURL       string  `yaml:"public_url"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	QRCodeSize      int     `yaml:"qrcode_size"`
}

// AuthConfig holds the login accounts and token signing settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenTTLMinutes int           `yaml:"token_ttl_minutes"`
	TokenTTL        time.Duration `yaml:"-"`
	Users           []UserConfig  `yaml:"users"`
}

// UserConfig is a login account. PasswordHash is a bcrypt hash.
type UserConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // postgres or sqlite
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// ClientConfig configures the API client used by parkingctl.
type ClientConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"`
	HTTPProxy      string            `yaml:"http_proxy"`
	Debug          bool              `yaml:"debug"`
	TokenStore     TokenStoreConfig  `yaml:"token_store"`
}

// TokenStoreConfig selects where the bearer token is kept between runs.
type TokenStoreConfig struct {
	Driver    string `yaml:"driver"` // memory, file or redis
	Scope     string `yaml:"scope"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

// Load reads the configuration from the given path. An empty path yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if cfg.Server.QRCodeSize <= 0 {
		cfg.Server.QRCodeSize = 256
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}

	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 7 * 24 * 60
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Client.TimeoutSeconds <= 0 {
		cfg.Client.TimeoutSeconds = 30
	}
	cfg.Client.Timeout = time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	if cfg.Client.Headers == nil {
		cfg.Client.Headers = map[string]string{}
	}
	if cfg.Client.TokenStore.Driver == "" {
		cfg.Client.TokenStore.Driver = "file"
	}
	if cfg.Client.TokenStore.Scope == "" {
		cfg.Client.TokenStore.Scope = "default"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(BaseURLEnv); v != "" {
		cfg.Client.BaseURL = v
	}
}
