package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"FileHashValidator/internal/checksum"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName   = "hashcheck"
	EnvPrefix = "HASHCHECK"
)

// Progress styles.
const (
	ProgressLine = "line"
	ProgressBar  = "bar"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Workdir       string `mapstructure:"workdir"`
	NoProgress    bool   `mapstructure:"no_progress"`
	ProgressStyle string `mapstructure:"progress_style"`
	ChunkSize     int    `mapstructure:"chunk_size"`
	Color         string `mapstructure:"color"`
	Stats         bool   `mapstructure:"stats"`

	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workdir", "")
	v.SetDefault("no_progress", false)
	v.SetDefault("progress_style", ProgressLine)
	v.SetDefault("chunk_size", checksum.DefaultChunkSize)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("stats", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")
}

// Load resolves configuration from defaults, an optional YAML config file,
// HASHCHECK_* environment variables and the given flags, in increasing priority.
// Flags are bound by name with dashes mapped to underscores.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("." + AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("error binding flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes enumerated values and resolves the working directory.
func (c *Config) Validate() error {
	c.ProgressStyle = strings.ToLower(strings.TrimSpace(c.ProgressStyle))
	switch c.ProgressStyle {
	case ProgressLine, ProgressBar:
	case "":
		c.ProgressStyle = ProgressLine
	default:
		return fmt.Errorf("invalid progress_style %q (use %s or %s)", c.ProgressStyle, ProgressLine, ProgressBar)
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		c.Color = ColorAuto
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always or never)", c.Color)
	}

	if c.ChunkSize <= 0 {
		c.ChunkSize = checksum.DefaultChunkSize
	}

	if c.LogFormat != "json" {
		c.LogFormat = "human"
	}

	if c.Workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		c.Workdir = wd
	}
	abs, err := filepath.Abs(c.Workdir)
	if err != nil {
		return fmt.Errorf("invalid workdir %q: %w", c.Workdir, err)
	}
	c.Workdir = abs
	return nil
}
