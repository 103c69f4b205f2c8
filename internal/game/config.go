package game

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/pymon/internal/gamedata"
)

// DefaultSaveFile is offered when the player saves or loads without a name.
const DefaultSaveFile = "save2024.csv"

// Config holds game configuration options. Values are layered: defaults,
// then an optional YAML file, then PYMON_* environment variables, then
// command-line flags applied by the caller.
type Config struct {
	// Seed for random number generation. Used for reproducible placement of
	// creatures and items and for the opponent's hands.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed" env:"PYMON_SEED"`

	// World files. Empty means the embedded defaults.
	LocationsFile string `yaml:"locations_file" env:"PYMON_LOCATIONS"`
	CreaturesFile string `yaml:"creatures_file" env:"PYMON_CREATURES"`
	ItemsFile     string `yaml:"items_file" env:"PYMON_ITEMS"`

	SaveFile string `yaml:"save_file" env:"PYMON_SAVE_FILE"`

	// Plain selects the line-oriented console instead of the full screen one.
	Plain bool `yaml:"plain" env:"PYMON_PLAIN"`

	LogFile  string `yaml:"log_file" env:"PYMON_LOG_FILE"` // "-" discards
	LogLevel string `yaml:"log_level" env:"PYMON_LOG_LEVEL"`

	Accent string `yaml:"accent" env:"PYMON_ACCENT"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SaveFile: DefaultSaveFile,
		LogFile:  "pymon.log",
		LogLevel: "info",
		Accent:   gamedata.DefaultAccent,
	}
}

// LoadConfig layers the YAML file at path (if any) and the environment over
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := gamedata.ParseHexColor(c.Accent); err != nil {
		return fmt.Errorf("accent: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.SaveFile == "" {
		c.SaveFile = DefaultSaveFile
	}
	return nil
}

// Files returns the world files to load.
func (c *Config) Files() gamedata.Files {
	return gamedata.Files{
		Locations: c.LocationsFile,
		Creatures: c.CreaturesFile,
		Items:     c.ItemsFile,
	}
}

// NewLogger builds the session logger. The console owns the terminal, so
// entries go to LogFile as JSON.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.LogFile == "" || c.LogFile == "-" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{c.LogFile}
	zapCfg.ErrorOutputPaths = []string{c.LogFile}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Sampling = nil

	return zapCfg.Build()
}
