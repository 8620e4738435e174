package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name        string
	Env         string
	FrontendURL string
	HTTP        HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Mail/SMS/Push configure the outbound channel providers. Each provider is a
// plain HTTPS API: a base URL plus an API key.
type Mail struct {
	BaseURL string
	APIKey  string
	From    string
}

type SMS struct {
	BaseURL string
	APIKey  string
	From    string
}

type Push struct {
	BaseURL string
	APIKey  string
}

// OAuthProvider holds one SSO provider's client credentials.
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type OAuth struct {
	Google   OAuthProvider
	Facebook OAuthProvider
	Apple    OAuthProvider
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Redis Redis `mapstructure:"redis"`
	Mail  Mail
	SMS   SMS `mapstructure:"sms"`
	Push  Push
	OAuth OAuth `mapstructure:"oauth"`
}

// Load reads the yaml file at path (CONFIG_PATH or the local default when
// empty) and lets APP_-prefixed environment variables override any key.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
