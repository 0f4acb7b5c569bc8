// Package config loads autocrop settings from defaults, an optional YAML
// file, a .env file and AUTOCROP_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-autocrop/internal/imaging"
)

// EnvPrefix prefixes every environment override, e.g. AUTOCROP_CROP_PADDING.
const EnvPrefix = "AUTOCROP"

// Config is the complete autocrop configuration.
type Config struct {
	Crop   CropConfig   `mapstructure:"crop"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// CropConfig holds the default detector parameters.
type CropConfig struct {
	Padding   int `mapstructure:"padding"`
	Tolerance int `mapstructure:"tolerance"`
	// Background forces a background color ("#RRGGBB"); empty infers it
	// from the image corners.
	Background string `mapstructure:"background"`
}

// OutputConfig controls how cropped files are named and written.
type OutputConfig struct {
	Suffix         string `mapstructure:"suffix"`
	WriteUncropped bool   `mapstructure:"write_uncropped"`
}

// LogConfig selects the logger mode ("release" or "debug") and level.
type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// Load reads configuration. path may be empty, in which case AUTOCROP_CONFIG
// names the YAML file if set; with neither, only defaults and environment
// apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Crop: CropConfig{
			Padding:   0,
			Tolerance: 0,
		},
		Output: OutputConfig{
			Suffix: imaging.DefaultSuffix,
		},
		Log: LogConfig{
			Mode:  "release",
			Level: "warn",
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate rejects negative crop parameters and unparseable colors.
func (c *Config) Validate() error {
	if c.Crop.Padding < 0 {
		return fmt.Errorf("crop.padding must be >= 0, got %d", c.Crop.Padding)
	}
	if c.Crop.Tolerance < 0 {
		return fmt.Errorf("crop.tolerance must be >= 0, got %d", c.Crop.Tolerance)
	}
	if c.Crop.Background != "" {
		if _, err := imaging.ParseHexColor(c.Crop.Background); err != nil {
			return fmt.Errorf("crop.background: %w", err)
		}
	}
	return nil
}

// Options converts the crop section into detector options.
func (c CropConfig) Options() (imaging.Options, error) {
	opts := imaging.Options{Padding: c.Padding, Tolerance: c.Tolerance}
	if c.Background != "" {
		bg, err := imaging.ParseHexColor(c.Background)
		if err != nil {
			return imaging.Options{}, fmt.Errorf("crop.background: %w", err)
		}
		opts.Background = bg
	}
	return opts, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("config", "")

	v.SetDefault("crop.padding", def.Crop.Padding)
	v.SetDefault("crop.tolerance", def.Crop.Tolerance)
	v.SetDefault("crop.background", def.Crop.Background)

	v.SetDefault("output.suffix", def.Output.Suffix)
	v.SetDefault("output.write_uncropped", def.Output.WriteUncropped)

	v.SetDefault("log.mode", def.Log.Mode)
	v.SetDefault("log.level", def.Log.Level)
}
