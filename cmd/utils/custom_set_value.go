package utils

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"
)

// SetConfigOptionLogLevel parses the option value into the logrus.Level pointed to by the config key.
func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a logrus.Level, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = logLevel

	return nil
}
