package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Settings store drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds gamebot configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format" validate:"omitempty,oneof=console json"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes" validate:"min=0"`
	// RateLimitPerMinute caps inbound frames per connection; 0 disables it.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute" validate:"min=0"`

	BotNick string   `mapstructure:"bot_nick" yaml:"bot_nick" validate:"required"`
	Rooms   []string `mapstructure:"rooms" yaml:"rooms" validate:"required,min=1,dive,required"`
	// Mods lists moderator account names.
	Mods []string `mapstructure:"mods" yaml:"mods"`

	AllowedIdle    time.Duration `mapstructure:"allowed_idle" yaml:"allowed_idle"`
	IdlePollPeriod time.Duration `mapstructure:"idle_poll_period" yaml:"idle_poll_period"`
	InviteInterval time.Duration `mapstructure:"invite_interval" yaml:"invite_interval"`

	Settings      SettingsConfig `mapstructure:"settings" yaml:"settings"`
	ChangelogFile string         `mapstructure:"changelog_file" yaml:"changelog_file"`
	Game          GameConfig     `mapstructure:"game" yaml:"game"`
	JWT           JWTConfig      `mapstructure:"jwt" yaml:"jwt"`
	// Accounts maps account names to bcrypt password hashes.
	Accounts map[string]string `mapstructure:"accounts" yaml:"accounts"`
}

// SettingsConfig selects where subscribers and delivery preferences live.
type SettingsConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver" validate:"oneof=file sqlite redis postgres"`
	// Path is the file for the file and sqlite drivers.
	Path string `mapstructure:"path" yaml:"path" validate:"required_if=Driver file,required_if=Driver sqlite"`
	DSN  string `mapstructure:"dsn" yaml:"dsn" validate:"required_if=Driver postgres"`
	Addr string `mapstructure:"addr" yaml:"addr" validate:"required_if=Driver redis"`
	DB   int    `mapstructure:"db" yaml:"db" validate:"min=0"`
	Key  string `mapstructure:"key" yaml:"key"`
}

// GameConfig configures the bundled roster game.
type GameConfig struct {
	Name       string `mapstructure:"name" yaml:"name" validate:"required"`
	MinPlayers int    `mapstructure:"min_players" yaml:"min_players" validate:"min=1"`
	MaxPlayers int    `mapstructure:"max_players" yaml:"max_players" validate:"gtefield=MinPlayers"`
}

// JWTConfig holds token signing options.
type JWTConfig struct {
	Secret   string        `mapstructure:"secret" yaml:"secret" validate:"required,min=8"`
	Issuer   string        `mapstructure:"issuer" yaml:"issuer"`
	Audience string        `mapstructure:"audience" yaml:"audience"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gt=0"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		ReadHeaderTimeout:  5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "info",
		LogFormat:          "console",
		MaxMessageBytes:    1 << 20,
		RateLimitPerMinute: 120,
		BotNick:            "gamebot",
		Rooms:              []string{"#games"},
		AllowedIdle:        30 * time.Minute,
		IdlePollPeriod:     300 * time.Second,
		InviteInterval:     15 * time.Minute,
		Settings: SettingsConfig{
			Driver: DriverFile,
			Path:   "settings.yaml",
			Key:    "gamebot:settings",
		},
		Game: GameConfig{
			Name:       "Roster",
			MinPlayers: 2,
			MaxPlayers: 8,
		},
		JWT: JWTConfig{
			Secret:   "change-me-please",
			Issuer:   "gamebot",
			Audience: "gamebot",
			TTL:      24 * time.Hour,
		},
	}
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if len(other.Rooms) > 0 {
		c.Rooms = other.Rooms
	}
	if other.Settings.Driver != "" {
		c.Settings.Driver = other.Settings.Driver
	}
}
