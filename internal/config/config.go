package config

import (
	"fmt"
	"time"

	"github.com/HYKY/hyky-services/pkg/config"
	"github.com/HYKY/hyky-services/pkg/logger"
	"go.uber.org/zap"
)

const serviceName = "services"

// Config is the typed configuration of the services API.
type Config struct {
	Service struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
		// DevMode adds the client snapshot to every response and exposes
		// internal error descriptions.
		DevMode bool `yaml:"dev_mode"`
	} `yaml:"service"`

	Server struct {
		HTTP struct {
			Port    string `yaml:"port"`
			Timeout int    `yaml:"timeout"`
			Debug   bool   `yaml:"debug"`
		} `yaml:"http"`

		GRPC struct {
			Port    string `yaml:"port"`
			Timeout int    `yaml:"timeout"`
		} `yaml:"grpc"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Name            string `yaml:"name"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		SSLMode         string `yaml:"ssl_mode"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
		SlowThreshold   int    `yaml:"slow_threshold"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		// TTL caps how long a session validity marker is cached, in seconds.
		TTL int `yaml:"ttl"`
	} `yaml:"redis"`

	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	Auth struct {
		// Salt signs tokens and suffixes every stored password hash.
		Salt          string `yaml:"salt"`
		SecureMode    bool   `yaml:"secure_mode"`
		EnforceExpiry bool   `yaml:"enforce_expiry"`
		TokenTTL      int    `yaml:"token_ttl"`
		TokenHeader   string `yaml:"token_header"`
		HashCost      int    `yaml:"hash_cost"`
	} `yaml:"auth"`

	Routes struct {
		Paths        []string `yaml:"paths"`
		Passthroughs []string `yaml:"passthroughs"`
	} `yaml:"routes"`

	Seed struct {
		Dir string `yaml:"dir"`
	} `yaml:"seed"`

	Logger *zap.Logger
}

var defaults = map[string]interface{}{
	"service.name":               "HYKY : Services",
	"service.version":            "0.0.1",
	"server.http.port":           "8080",
	"server.http.timeout":        30,
	"server.grpc.port":           "9090",
	"database.host":              "localhost",
	"database.port":              5432,
	"database.ssl_mode":          "disable",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": 300,
	"database.slow_threshold":    200,
	"redis.host":                 "localhost",
	"redis.port":                 6379,
	"redis.ttl":                  3600,
	"log.level":                  "info",
	"log.format":                 "json",
	"log.output":                 "stdout",
	"auth.enforce_expiry":        true,
	"auth.token_ttl":             604800,
	"auth.token_header":          "X-Token",
	"auth.hash_cost":             10,
	"routes.paths":               []string{"/api/v1"},
	"routes.passthroughs":        []string{"/auth", "/api/v1/auth", "/api/v1/healthcheck", "/metrics"},
	"seed.dir":                   "data/bootstrap",
}

// Load reads the configuration and builds the logger.
func Load() (*Config, error) {
	cfg, err := config.Load(serviceName, defaults)
	if err != nil {
		return nil, err
	}

	appConfig, err := fromSource(cfg)
	if err != nil {
		return nil, err
	}

	appConfig.Logger, err = logger.NewZapLogger(logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		FilePath:    appConfig.Log.FilePath,
		Development: appConfig.Server.HTTP.Debug,
	})
	if err != nil {
		return nil, err
	}

	return appConfig, nil
}

func fromSource(cfg config.Config) (*Config, error) {
	appConfig := &Config{}

	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.DevMode = cfg.GetBool("service.dev_mode")

	appConfig.Server.HTTP.Port = cfg.GetString("server.http.port")
	appConfig.Server.HTTP.Timeout = cfg.GetInt("server.http.timeout")
	appConfig.Server.HTTP.Debug = cfg.GetBool("server.http.debug")

	appConfig.Server.GRPC.Port = cfg.GetString("server.grpc.port")
	appConfig.Server.GRPC.Timeout = cfg.GetInt("server.grpc.timeout")

	appConfig.Database.Host = cfg.GetString("database.host")
	appConfig.Database.Port = cfg.GetInt("database.port")
	appConfig.Database.Name = cfg.GetString("database.name")
	appConfig.Database.User = cfg.GetString("database.user")
	appConfig.Database.Password = cfg.GetString("database.password")
	appConfig.Database.SSLMode = cfg.GetString("database.ssl_mode")
	appConfig.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	appConfig.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	appConfig.Database.ConnMaxLifetime = cfg.GetInt("database.conn_max_lifetime")
	appConfig.Database.SlowThreshold = cfg.GetInt("database.slow_threshold")

	appConfig.Redis.Host = cfg.GetString("redis.host")
	appConfig.Redis.Port = cfg.GetInt("redis.port")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.DB = cfg.GetInt("redis.db")
	appConfig.Redis.TTL = cfg.GetInt("redis.ttl")

	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")
	appConfig.Log.FilePath = cfg.GetString("log.file_path")

	appConfig.Auth.Salt = cfg.GetString("auth.salt")
	appConfig.Auth.SecureMode = cfg.GetBool("auth.secure_mode")
	appConfig.Auth.EnforceExpiry = cfg.GetBool("auth.enforce_expiry")
	appConfig.Auth.TokenTTL = cfg.GetInt("auth.token_ttl")
	appConfig.Auth.TokenHeader = cfg.GetString("auth.token_header")
	appConfig.Auth.HashCost = cfg.GetInt("auth.hash_cost")

	appConfig.Routes.Paths = cfg.GetStringSlice("routes.paths")
	appConfig.Routes.Passthroughs = cfg.GetStringSlice("routes.passthroughs")

	appConfig.Seed.Dir = cfg.GetString("seed.dir")

	if appConfig.Auth.Salt == "" {
		return nil, fmt.Errorf("auth.salt must be set")
	}
	if appConfig.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth.token_ttl must be positive, got %d", appConfig.Auth.TokenTTL)
	}

	return appConfig, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// RedisAddr returns host:port of the redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// TokenTTL returns the lifetime of an issued token.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTL) * time.Second
}

// RequestTimeout returns the HTTP request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.HTTP.Timeout) * time.Second
}
