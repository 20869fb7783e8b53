package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

//go:embed schema.cue
var schemaSrc string

// DeviceConfig names the MIDI port of the Rytm and its SysEx device id
type DeviceConfig struct {
	PortName    string `json:"portName"`
	DeviceID    int    `json:"deviceId"`
	AutoConnect bool   `json:"autoConnect"`
}

type EngineConfig struct {
	LockTimeout string `json:"lockTimeout"`
}

// Timeout parses LockTimeout
func (e EngineConfig) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(e.LockTimeout)
	if err != nil {
		return 0, fmt.Errorf("engine.lockTimeout: %w", err)
	}
	return d, nil
}

type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// SentryConfig is disabled while DSN is empty
type SentryConfig struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

// UIConfig stores console preferences
type UIConfig struct {
	Palette string `json:"palette"`
	History int    `json:"history"`
}

// Config is the main configuration structure
type Config struct {
	Device DeviceConfig `json:"device"`
	Engine EngineConfig `json:"engine"`
	Log    LogConfig    `json:"log"`
	Sentry SentryConfig `json:"sentry"`
	Server ServerConfig `json:"server"`
	UI     UIConfig     `json:"ui"`
}

// DefaultConfig returns the values the schema fills in for an empty file
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			PortName:    "Elektron Analog Rytm",
			AutoConnect: true,
		},
		Engine: EngineConfig{LockTimeout: "3s"},
		Log:    LogConfig{Level: "info"},
		Sentry: SentryConfig{Environment: "production"},
		Server: ServerConfig{Addr: "127.0.0.1:8765"},
		UI:     UIConfig{Palette: "default", History: 200},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-rytm"), nil
}

// ConfigPath returns the full path to config.cue
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.cue"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a CUE config. Missing fields take their
// schema default, unknown fields are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if _, err := cfg.Engine.Timeout(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config as CUE text
func (c *Config) SaveFile(path string) error {
	value := cuecontext.New().Encode(c)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data, err := format.Node(value.Syntax())
	if err != nil {
		return fmt.Errorf("format config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
