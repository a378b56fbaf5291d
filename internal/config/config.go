package config

import (
	"errors"
	"fmt"
	"strings"

	"osuisetup/internal/validator"

	"github.com/spf13/viper"
)

// Defaults match the stock OpenSnitch install and the TUI listener
const (
	DefaultConfigPath    = "/etc/opensnitchd/default-config.json"
	DefaultTargetAddress = "unix:///tmp/osui.sock"
	DefaultField         = "Server.Address"
	DefaultEditor        = "auto"
	DefaultService       = "opensnitch"
	DefaultTUICommand    = "opensnitch-tui"
)

// Config represents the tool configuration
type Config struct {
	Patch  PatchConfig  `mapstructure:"patch"`
	Report ReportConfig `mapstructure:"report"`
	Log    LogConfig    `mapstructure:"log"`
}

// PatchConfig describes which file to patch and how
type PatchConfig struct {
	ConfigPath    string `mapstructure:"config_path" validate:"required"`
	TargetAddress string `mapstructure:"target_address" validate:"socketuri"`
	Field         string `mapstructure:"field" validate:"fieldpath"`
	Editor        string `mapstructure:"editor" validate:"oneof=auto native jq lexical"`
}

// ReportConfig controls operator output
type ReportConfig struct {
	Color      bool   `mapstructure:"color"`
	Service    string `mapstructure:"service" validate:"required"`
	TUICommand string `mapstructure:"tui_command" validate:"required"`
}

// LoadConfig loads the configuration from path, or from the search paths
// when path is empty. A missing file leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(InDot)
		v.AddConfigPath(InHome)
		v.AddConfigPath(InHomeDot)
		v.AddConfigPath(InEtc)
	}
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Patch: PatchConfig{
			ConfigPath:    DefaultConfigPath,
			TargetAddress: DefaultTargetAddress,
			Field:         DefaultField,
			Editor:        DefaultEditor,
		},
		Report: ReportConfig{
			Color:      true,
			Service:    DefaultService,
			TUICommand: DefaultTUICommand,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.Log.SetDefaults().Validate()
}

// setDefaults registers default values so env overrides and partial files
// both resolve against them
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("patch.config_path", d.Patch.ConfigPath)
	v.SetDefault("patch.target_address", d.Patch.TargetAddress)
	v.SetDefault("patch.field", d.Patch.Field)
	v.SetDefault("patch.editor", d.Patch.Editor)

	v.SetDefault("report.color", d.Report.Color)
	v.SetDefault("report.service", d.Report.Service)
	v.SetDefault("report.tui_command", d.Report.TUICommand)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
}
