// Package config loads application configuration from defaults, an optional
// config file and MAKEOVER_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Camera CameraConfig `mapstructure:"camera"`
	Dwell  DwellConfig  `mapstructure:"dwell"`
	Paths  PathsConfig  `mapstructure:"paths"`
	Server ServerConfig `mapstructure:"server"`
}

// CameraConfig selects the capture device.
type CameraConfig struct {
	ID  int `mapstructure:"id"`
	FPS int `mapstructure:"fps"`
}

// DwellConfig tunes the point-and-hold click.
type DwellConfig struct {
	HoldSeconds     float64 `mapstructure:"hold_seconds"`
	StabilityRadius float64 `mapstructure:"stability_radius"`
}

// PathsConfig locates on-disk resources.
type PathsConfig struct {
	AssetDir    string `mapstructure:"asset_dir"`
	SaveDir     string `mapstructure:"save_dir"`
	CascadeFile string `mapstructure:"cascade_file"`
	Database    string `mapstructure:"database"`
}

// ServerConfig configures the embedded HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration. The config file is optional; when present it
// is read from ~/.config/makeover/config.toml (or the directory in
// MAKEOVER_CONFIG_DIR).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configDir := os.Getenv("MAKEOVER_CONFIG_DIR")
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config", "makeover")
		}
	}
	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("MAKEOVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := ".makeover"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".makeover")
	}

	v.SetDefault("camera.id", 0)
	v.SetDefault("camera.fps", 30)
	v.SetDefault("dwell.hold_seconds", 1.5)
	v.SetDefault("dwell.stability_radius", 25.0)
	v.SetDefault("paths.asset_dir", filepath.Join(dataDir, "assets"))
	v.SetDefault("paths.save_dir", filepath.Join(dataDir, "captures"))
	v.SetDefault("paths.cascade_file", filepath.Join(dataDir, "haarcascade_frontalface_default.xml"))
	v.SetDefault("paths.database", filepath.Join(dataDir, "makeover.db"))
	v.SetDefault("server.addr", "localhost:8089")
}
