package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration. Non-secret settings live in
// config.yaml; credentials are bound to environment variables so a missing
// key only fails the endpoint that needs it, never process startup.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Mail      MailConfig      `mapstructure:"mail"`
	DeepSeek  DeepSeekConfig  `mapstructure:"deepseek"`
	DashScope DashScopeConfig `mapstructure:"dashscope"`
	Forensics ForensicsConfig `mapstructure:"forensics"`
	Evidence  EvidenceConfig  `mapstructure:"evidence"`
}

type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or mysql
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	DB      int    `mapstructure:"db"`
}

type JWTConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type DeepSeekConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c DeepSeekConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DashScopeConfig struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
	MaxPollAttempts     int    `mapstructure:"max_poll_attempts"`
}

func (c DashScopeConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

type ForensicsConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c ForensicsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type EvidenceConfig struct {
	SearchURL      string `mapstructure:"search_url"`
	MaxLinks       int    `mapstructure:"max_links"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c EvidenceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var cfg *Config

// Load reads the configuration file and binds secret values to their
// environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Secrets are environment-only so they never end up in config.yaml.
	bindings := map[string]string{
		"deepseek.api_key":  "DEEPSEEK_API_KEY",
		"dashscope.api_key": "DASHSCOPE_API_KEY",
		"mail.username":     "MAIL_USERNAME",
		"mail.password":     "MAIL_PASSWORD",
		"database.dsn":      "DATABASE_DSN",
		"jwt.secret_key":    "JWT_SECRET_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(c)
	cfg = c
	return c, nil
}

func setDefaults(c *Config) {
	if c.DeepSeek.BaseURL == "" {
		c.DeepSeek.BaseURL = "https://api.deepseek.com/v1"
	}
	if c.DeepSeek.Model == "" {
		c.DeepSeek.Model = "deepseek-chat"
	}
	if c.DeepSeek.TimeoutSeconds == 0 {
		c.DeepSeek.TimeoutSeconds = 100
	}
	if c.DashScope.BaseURL == "" {
		c.DashScope.BaseURL = "https://dashscope.aliyuncs.com"
	}
	if c.DashScope.Model == "" {
		c.DashScope.Model = "wanx2.1-t2i-turbo"
	}
	if c.DashScope.PollIntervalSeconds == 0 {
		c.DashScope.PollIntervalSeconds = 2
	}
	if c.DashScope.MaxPollAttempts == 0 {
		c.DashScope.MaxPollAttempts = 30
	}
	if c.Forensics.URL == "" {
		c.Forensics.URL = "http://localhost:5001/detect"
	}
	if c.Forensics.TimeoutSeconds == 0 {
		c.Forensics.TimeoutSeconds = 300
	}
	if c.Evidence.SearchURL == "" {
		c.Evidence.SearchURL = "https://www.baidu.com/s"
	}
	if c.Evidence.MaxLinks == 0 {
		c.Evidence.MaxLinks = 3
	}
	if c.Evidence.TimeoutSeconds == 0 {
		c.Evidence.TimeoutSeconds = 5
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./static"
	}
	if c.JWT.ExpireHours == 0 {
		c.JWT.ExpireHours = 24
	}
}

// Get returns the loaded configuration.
func Get() *Config {
	return cfg
}

// GetServerAddr returns the host:port the HTTP server listens on.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetRedisAddr returns the redis address.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
