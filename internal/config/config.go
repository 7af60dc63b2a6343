package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/hiit-timer/internal/i18n"
)

const (
	// EnvPrefix prefixes every environment override, e.g. HIIT_LANGUAGE
	EnvPrefix = "HIIT"

	appDirName     = ".hiit-timer"
	configFileName = "config"
)

type Config struct {
	DataDir      string          `mapstructure:"data_dir"`
	Language     string          `mapstructure:"language"`
	TickInterval time.Duration   `mapstructure:"tick_interval"`
	Audio        AudioConfig     `mapstructure:"audio"`
	Log          LogConfig       `mapstructure:"log"`
	Generator    GeneratorConfig `mapstructure:"generator"`

	// File is the config file that was read, empty if none was found
	File string `mapstructure:"-"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type GeneratorConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DefaultDir returns $HOME/.hiit-timer, where the config file, the workout
// database and the log live unless overridden.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

// BindFlags registers the command line overrides on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default $HOME/.hiit-timer/config.yaml)")
	fs.String("data-dir", "", "directory for saved workouts and preferences")
	fs.String("language", "", "UI language ("+strings.Join(i18n.Languages(), "|")+")")
	fs.Duration("tick-interval", 0, "wall-clock length of one workout second")
	fs.Bool("audio", true, "play audio cues")
	fs.String("log-file", "", "log file path")
	fs.String("generator-model", "", "model used to generate workouts")
	fs.String("generator-endpoint", "", "base URL of the generation API")
}

var flagKeys = map[string]string{
	"data-dir":           "data_dir",
	"language":           "language",
	"tick-interval":      "tick_interval",
	"audio":              "audio.enabled",
	"log-file":           "log.file",
	"generator-model":    "generator.model",
	"generator-endpoint": "generator.endpoint",
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("data_dir", dir)
	v.SetDefault("language", "en")
	v.SetDefault("tick_interval", time.Second)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("log.file", filepath.Join(dir, "hiit-timer.log"))
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("generator.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generator.model", "gemini-2.5-flash")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.timeout", 60*time.Second)
}

// Load resolves the configuration from, lowest precedence first: built-in
// defaults, the YAML config file, HIIT_* environment variables and the flags
// registered by BindFlags. fs may be nil.
//
// Nested keys map to env vars with dots replaced by underscores:
//
//	HIIT_DATA_DIR, HIIT_LANGUAGE, HIIT_TICK_INTERVAL, HIIT_AUDIO_ENABLED,
//	HIIT_LOG_FILE, HIIT_GENERATOR_MODEL, HIIT_GENERATOR_API_KEY, ...
//
// GEMINI_API_KEY is accepted as a fallback for the generator key.
func Load(fs *pflag.FlagSet) (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("generator.api_key", EnvPrefix+"_GENERATOR_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	explicitFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicitFile = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !slices.Contains(i18n.Languages(), c.Language) {
		return fmt.Errorf("language %q is not supported, use one of %v", c.Language, i18n.Languages())
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings must not be negative")
	}
	if c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required")
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator.timeout must be positive, got %s", c.Generator.Timeout)
	}
	return nil
}
