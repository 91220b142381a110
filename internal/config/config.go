// Package config provides Viper-based configuration loading for Archadium.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage driver identifiers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// GameConfig holds content and session settings.
type GameConfig struct {
	// ContentDir is the root of the rooms/, items/ and enemies/ YAML directories.
	ContentDir string `mapstructure:"content_dir"`
	// StartRoom is the room a new game begins in.
	StartRoom string `mapstructure:"start_room"`
	// DefaultName is used when the player enters an empty name.
	DefaultName string `mapstructure:"default_name"`
	// SaveSlot is the slot used by the save and load commands.
	SaveSlot string `mapstructure:"save_slot"`
	// Pacing enables typewriter and pause effects. Disable for headless runs.
	Pacing bool `mapstructure:"pacing"`
	// TypewriterDelay is the per-character delay of the typewriter effect.
	TypewriterDelay time.Duration `mapstructure:"typewriter_delay"`
	// Seed, when non-zero, makes every roll reproducible. Zero rolls from
	// crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// ProgressionConfig holds leveling settings.
type ProgressionConfig struct {
	// CascadeLevelUps applies every level-up a single xp award pays for
	// instead of at most one.
	CascadeLevelUps bool `mapstructure:"cascade_level_ups"`
}

// StorageConfig selects the save-slot backend.
type StorageConfig struct {
	// Driver is "file" or "postgres".
	Driver string `mapstructure:"driver"`
	// Dir is the save directory for the file driver.
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// HealthTimeout bounds the reachability check run before the save store
	// is handed to the game.
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ScriptingConfig holds Lua battle script settings.
type ScriptingConfig struct {
	// Dir holds *.lua files. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps Lua opcodes per VM; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the log destination path. The game owns stdout, so logs
	// default to a file.
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds OpenTelemetry tracing settings.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Config is the top-level application configuration.
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Scripting   ScriptingConfig   `mapstructure:"scripting"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Driver == DriverPostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.ContentDir == "" {
		errs = append(errs, "game.content_dir must not be empty")
	}
	if g.StartRoom == "" {
		errs = append(errs, "game.start_room must not be empty")
	}
	if g.SaveSlot == "" {
		errs = append(errs, "game.save_slot must not be empty")
	}
	if strings.ContainsAny(g.SaveSlot, `/\`) {
		errs = append(errs, fmt.Sprintf("game.save_slot must not contain path separators, got %q", g.SaveSlot))
	}
	if g.TypewriterDelay < 0 {
		errs = append(errs, "game.typewriter_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	switch s.Driver {
	case DriverFile:
		if s.Dir == "" {
			return errors.New("storage.dir must not be empty for the file driver")
		}
		return nil
	case DriverPostgres:
		return nil
	default:
		return fmt.Errorf("storage.driver must be one of [file, postgres], got %q", s.Driver)
	}
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if d.HealthTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("database.health_timeout must be positive, got %s", d.HealthTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. A missing file is not an error: the
// defaults and environment alone are used.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ARCHADIUM_ prefix
	v.SetEnvPrefix("ARCHADIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("checking config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the configuration produced by the built-in defaults alone.
//
// Postcondition: Returns a Config that passes Validate.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.content_dir", "content")
	v.SetDefault("game.start_room", "village_square")
	v.SetDefault("game.default_name", "Hero")
	v.SetDefault("game.save_slot", "save1")
	v.SetDefault("game.pacing", true)
	v.SetDefault("game.typewriter_delay", "30ms")
	v.SetDefault("game.seed", 0)

	v.SetDefault("progression.cascade_level_ups", false)

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "saves")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "archadium")
	v.SetDefault("database.password", "archadium")
	v.SetDefault("database.name", "archadium")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.health_timeout", "5s")

	v.SetDefault("scripting.dir", "content/scripts")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "archadium.log")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "archadium")
}
