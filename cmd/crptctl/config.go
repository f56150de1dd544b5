package main

import (
	"strings"
	"time"

	"crpt-gateway/crpt"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type RegistryConfig struct {
	Endpoint    string        `mapstructure:"endpoint" validate:"required,url"`
	Token       string        `mapstructure:"token" validate:"required"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gte=0"`
}

// QuotaConfig é a cota do registro: RequestLimit envios por TimeUnit.
type QuotaConfig struct {
	TimeUnit     time.Duration `mapstructure:"time_unit" validate:"gt=0"`
	RequestLimit int           `mapstructure:"request_limit" validate:"gt=0"`
	// 0 espera indefinidamente
	AcquireTimeout time.Duration `mapstructure:"acquire_timeout" validate:"gte=0"`
}

type StatsConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	RedisAddr     string        `mapstructure:"redis_addr" validate:"required_if=Enabled true"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"gte=0"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("registry.endpoint", crpt.DefaultEndpoint)
	v.SetDefault("registry.token", "")
	v.SetDefault("registry.http_timeout", 30*time.Second)
	v.SetDefault("quota.time_unit", time.Second)
	v.SetDefault("quota.request_limit", 5)
	v.SetDefault("quota.acquire_timeout", 0)
	v.SetDefault("stats.enabled", false)
	v.SetDefault("stats.redis_addr", "")
	v.SetDefault("stats.redis_password", "")
	v.SetDefault("stats.redis_db", 0)
	v.SetDefault("stats.prefix", "crpt:stats")
	v.SetDefault("stats.ttl", 24*time.Hour)
	v.SetDefault("logging.level", "info")
}

// LoadConfig lê crptctl.yaml (ou o arquivo em path) e as variáveis CRPT_*.
// A ausência do arquivo padrão não é erro; a de um path explícito é.
func LoadConfig(path string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("crptctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/crptctl")
	}

	v.SetEnvPrefix("CRPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
