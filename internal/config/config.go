package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied when neither config.yml nor the environment set a key.
const (
	defaultPort                = "8080"
	defaultDBPath              = "app.db"
	defaultLogLevel            = "info"
	defaultTokenTTL            = 7 * 24 * time.Hour
	defaultLeaderboardInterval = 5 * time.Second

	// MaxLeaderboardInterval bounds both the configured default and ?interval.
	MaxLeaderboardInterval = 60 * time.Second

	envPrefix  = "PICKEM"
	configName = "config"
)

var (
	ErrMissingSecret     = errors.New("auth.secret must be set")
	ErrInvalidTokenTTL   = errors.New("auth.token_ttl must be positive")
	ErrInvalidBcryptCost = fmt.Errorf("auth.bcrypt_cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	ErrInvalidInterval   = fmt.Errorf("leaderboard.interval must be within (0, %s]", MaxLeaderboardInterval)
)

// Config is built once at startup and treated as read-only afterwards.
type Config struct {
	Port        string            `mapstructure:"port"`
	DB          DBConfig          `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig carries the signing secret and hashing parameters.
type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type LeaderboardConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads config.yml from the first matching search path and applies
// PICKEM_* environment overrides (e.g. PICKEM_AUTH_SECRET). A missing file is
// not an error; an invalid result is.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults also registers every key so AutomaticEnv can reach it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("leaderboard.interval", defaultLeaderboardInterval)
}

// Validate reports the first configuration rule that is violated.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidBcryptCost
	}
	if c.Leaderboard.Interval <= 0 || c.Leaderboard.Interval > MaxLeaderboardInterval {
		return ErrInvalidInterval
	}
	return nil
}
