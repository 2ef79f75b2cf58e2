package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds settings safe to expose in logs and tests.
// TTL values are read as seconds.
type Public struct {
	Addr            string        `yaml:"addr"`
	BaseURL         string        `yaml:"base_url"` // used in verification/reset email links
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	ResetTicketTTL  time.Duration `yaml:"reset_ticket_ttl"`
	ListPageSize    int           `yaml:"list_page_size"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
	Email  Email  `yaml:"email"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) AccessTokenTTL() time.Duration {
	return c.Public.AccessTokenTTL * time.Second
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return c.Public.RefreshTokenTTL * time.Second
}

func (c *Config) ResetTicketTTL() time.Duration {
	return c.Public.ResetTicketTTL * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	required := map[string]bool{
		"addr":              c.Public.Addr != "",
		"access_token_ttl":  c.Public.AccessTokenTTL > 0,
		"refresh_token_ttl": c.Public.RefreshTokenTTL > 0,
		"reset_ticket_ttl":  c.Public.ResetTicketTTL > 0,
		"list_page_size":    c.Public.ListPageSize > 0,
		"jwt_key":           c.Private.JwtKey != "",
	}
	for field, ok := range required {
		if !ok {
			return fmt.Errorf("config field %s is missing or invalid", field)
		}
	}
	return nil
}
