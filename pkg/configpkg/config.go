// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"

	"github.com/spf13/viper"
)

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultServerAddress = "0.0.0.0:8080"
	DefaultReportFormat  = "text"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress      string `mapstructure:"SERVER_ADDRESS"`
	Environment        string `mapstructure:"GO_ENV"`
	SavingsPenaltyMode string `mapstructure:"SAVINGS_PENALTY_MODE"`
	ReportFormat       string `mapstructure:"REPORT_FORMAT"`
	NoColor            bool   `mapstructure:"NO_COLOR"`
}

// Load reads configuration from path/app.env and environment variables.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", DefaultServerAddress)
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("SAVINGS_PENALTY_MODE", "legacy")
	v.SetDefault("REPORT_FORMAT", DefaultReportFormat)
	v.SetDefault("NO_COLOR", false)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
