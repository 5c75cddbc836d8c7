// Package config manages configuration for the keyhandler CLI.
// It uses Viper for unified configuration from flags, environment variables and an optional file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings that may come from the config file or the environment.
// Command line flags bound at load time take precedence over both.
type Config struct {
	Profile   string `mapstructure:"profile" yaml:"profile"`
	Regions   string `mapstructure:"regions" yaml:"regions"`
	KeyFile   string `mapstructure:"key_file" yaml:"key_file"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"keyfile": "key_file",
	"profile": "profile",
	"regions": "regions",
}

var validate = validator.New()

// Load loads the configuration using Viper.
// Precedence: explicitly set flag > KEYHANDLER_* environment variable > config file > default.
// A missing config file at the default location is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := loadConfigFile(v); err != nil {
		return nil, apperrors.ErrConfig("error loading config file", err)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, apperrors.ErrConfig("error binding flags", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.ErrConfig("error unmarshaling config", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, apperrors.ErrConfig("config validation failed", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the path to the config file.
// KEYHANDLER_CONFIG overrides the default location under the user's home directory.
func GetConfigPath() (string, error) {
	if path := os.Getenv(constants.EnvPrefix + "_CONFIG"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return constants.ConfigFilePath(homeDir), nil
}

// DefaultKeyFile returns the default public key path for the current user.
// Returns an empty string if the home directory cannot be determined.
func DefaultKeyFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return constants.DefaultKeyFilePath(homeDir)
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", constants.DefaultProfile)
	v.SetDefault("regions", constants.DefaultRegions)
	v.SetDefault("key_file", DefaultKeyFile())
	v.SetDefault("log_format", constants.LogFormatText)
}

func loadConfigFile(v *viper.Viper) error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if readErr := v.ReadInConfig(); readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(readErr, &notFound) || errors.Is(readErr, os.ErrNotExist) {
			if os.Getenv(constants.EnvPrefix+"_CONFIG") == "" {
				return nil
			}
		}
		return readErr
	}

	return nil
}

func bindEnvVars(v *viper.Viper) {
	for _, key := range []string{"profile", "regions", "key_file", "log_format"} {
		_ = v.BindEnv(key, constants.EnvPrefix+"_"+strings.ToUpper(key))
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	return nil
}
