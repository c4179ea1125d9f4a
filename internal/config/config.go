package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Activation ActivationConfig `mapstructure:"activation"`
	Downloads  DownloadsConfig  `mapstructure:"downloads"`
	Questions  QuestionsConfig  `mapstructure:"questions"`
	Authoring  AuthoringConfig  `mapstructure:"authoring"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1,dive,required"`
}

// RateLimitConfig limits requests per client IP. MaxRequests 0 disables the limiter.
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests" validate:"min=0"`
	Window      time.Duration `mapstructure:"window"`
}

type ActivationConfig struct {
	Codes []string `mapstructure:"codes" validate:"min=1,dive,required"`
}

type DownloadsConfig struct {
	Mode            string `mapstructure:"mode" validate:"oneof=redirect stream"`
	Source          string `mapstructure:"source" validate:"oneof=dir minio"`
	Directory       string `mapstructure:"directory" validate:"required_if=Source dir"`
	PublicPath      string `mapstructure:"public_path" validate:"required,startswith=/"`
	DefaultPlatform string `mapstructure:"default_platform" validate:"oneof=android ios windows macos linux web"`
	MinioEndpoint   string `mapstructure:"minio_endpoint" validate:"required_if=Source minio"`
	MinioAccessKey  string `mapstructure:"minio_access_key"`
	MinioSecretKey  string `mapstructure:"minio_secret_key"`
	MinioBucket     string `mapstructure:"minio_bucket" validate:"required_if=Source minio"`
	MinioSecure     bool   `mapstructure:"minio_secure"`
}

type QuestionsConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

type AuthoringConfig struct {
	Store           string        `mapstructure:"store" validate:"oneof=memory file redis"`
	StorePath       string        `mapstructure:"store_path" validate:"required_if=Store file"`
	ExportDirectory string        `mapstructure:"export_directory" validate:"required"`
	StoreTimeout    time.Duration `mapstructure:"store_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	Prefix   string `mapstructure:"prefix"`
}

// DefaultActivationCodes is the allow-list used when none is configured.
var DefaultActivationCodes = []string{"BIJBEL2025", "QUIZ1234", "TESTCODE", "DEMO-0000-2025"}

// Load reads configFile (or config.yaml from the working directory and
// $HOME/.config/bijbelquiz when empty), applies BIJBELQUIZ_* environment
// overrides and validates the result.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bijbelquiz")
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.file", filepath.Join("logs", "bijbelquiz.log"))
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.max_requests", 60)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("activation.codes", DefaultActivationCodes)
	v.SetDefault("downloads.mode", "redirect")
	v.SetDefault("downloads.source", "dir")
	v.SetDefault("downloads.directory", filepath.Join("public", "downloads"))
	v.SetDefault("downloads.public_path", "/downloads")
	v.SetDefault("downloads.default_platform", "android")
	v.SetDefault("downloads.minio_endpoint", "")
	v.SetDefault("downloads.minio_access_key", "")
	v.SetDefault("downloads.minio_secret_key", "")
	v.SetDefault("downloads.minio_bucket", "")
	v.SetDefault("downloads.minio_secure", false)
	v.SetDefault("questions.file", filepath.Join("app", "assets", "questions-nl-sv.json"))
	v.SetDefault("authoring.store", "file")
	v.SetDefault("authoring.store_path", filepath.Join(".bijbelquiz", "authoring.json"))
	v.SetDefault("authoring.export_directory", ".")
	v.SetDefault("authoring.store_timeout", 2*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "bijbelquiz:")

	v.SetEnvPrefix("BIJBELQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "BIJBELQUIZ_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}
	err = validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func (c *Config) Debug() bool { return c.Server.Mode == "debug" }
