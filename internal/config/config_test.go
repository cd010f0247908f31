package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rooms", func(c *Config) { c.Rooms = nil }},
		{"empty room", func(c *Config) { c.Rooms = []string{""} }},
		{"unknown driver", func(c *Config) { c.Settings.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Settings.Driver = DriverPostgres }},
		{"redis without addr", func(c *Config) { c.Settings.Driver = DriverRedis }},
		{"max below min", func(c *Config) { c.Game.MaxPlayers = 1 }},
		{"short secret", func(c *Config) { c.JWT.Secret = "x" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadWritesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected path %s, got %s", path, resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.IdlePollPeriod != 300*time.Second {
		t.Fatalf("unexpected idle poll period %v", cfg.IdlePollPeriod)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
bot_nick: lobbybot
rooms: ["#one", "#two"]
mods: [boss]
allowed_idle: 10m
invite_interval: 1m
settings:
  driver: sqlite
  path: /tmp/settings.db
game:
  name: Resistance
  min_players: 5
  max_players: 10
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GAMEBOT_ADDR", ":9999")
	t.Setenv("GAMEBOT_GAME_NAME", "Avalon")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BotNick != "lobbybot" || len(cfg.Rooms) != 2 || cfg.Rooms[1] != "#two" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.AllowedIdle != 10*time.Minute || cfg.InviteInterval != time.Minute {
		t.Fatalf("durations not parsed: %v %v", cfg.AllowedIdle, cfg.InviteInterval)
	}
	if cfg.Settings.Driver != DriverSQLite || cfg.Settings.Path != "/tmp/settings.db" {
		t.Fatalf("settings not applied: %+v", cfg.Settings)
	}
	if cfg.Addr != ":9999" || cfg.Game.Name != "Avalon" {
		t.Fatalf("env overrides not applied: addr=%s game=%s", cfg.Addr, cfg.Game.Name)
	}
	if cfg.Game.MinPlayers != 5 || cfg.Game.MaxPlayers != 10 {
		t.Fatalf("game limits not applied: %+v", cfg.Game)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GAMEBOT_TEST_A=from-file\nGAMEBOT_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("GAMEBOT_TEST_A", "from-env")
	t.Cleanup(func() { os.Unsetenv("GAMEBOT_TEST_B") })

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("GAMEBOT_TEST_A"); got != "from-env" {
		t.Fatalf("existing variable overridden: %s", got)
	}
	if got := os.Getenv("GAMEBOT_TEST_B"); got != "from-file" {
		t.Fatalf("file variable not loaded: %s", got)
	}
}

func TestUpdateFromKeepsUnsetValues(t *testing.T) {
	cfg := Default()
	cfg.Settings.Path = "/data/settings.db"
	cfg.UpdateFrom(Config{Addr: ":9000", Settings: SettingsConfig{Driver: DriverSQLite}})

	if cfg.Addr != ":9000" {
		t.Fatalf("addr not overridden: %s", cfg.Addr)
	}
	if cfg.Settings.Driver != DriverSQLite || cfg.Settings.Path != "/data/settings.db" {
		t.Fatalf("settings mangled: %+v", cfg.Settings)
	}
	if cfg.BotNick != "gamebot" || len(cfg.Rooms) != 1 {
		t.Fatalf("unset values changed: %+v", cfg)
	}
}
