package utils

import (
	"go/types"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/samm-evaluation/echo-server/internal/serve"
	"github.com/samm-evaluation/echo-server/internal/serve/httphandler"
)

func PortOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "port",
		Usage:       "Port to listen and serve on",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 9200,
		Required:    false,
	}
}

func AdminPortOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "admin-port",
		Usage:       "Port of the admin listener serving /health and /metrics. 0 disables it.",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 0,
		Required:    false,
	}
}

func ResponseBodyOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "response-body",
		Usage:       "Body written back to every GET request.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: httphandler.DefaultResponseBody,
		Required:    false,
	}
}

func ContentTypeOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "content-type",
		Usage:       "Content type of the response body.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: httphandler.DefaultContentType,
		Required:    true,
	}
}

func LogLevelOption(configKey *logrus.Level) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "log-level",
		Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
		OptType:        types.String,
		FlagDefault:    "INFO",
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionLogLevel,
		Required:       false,
	}
}

func TrackerDSNOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:      "tracker-dsn",
		Usage:     "The Sentry DSN. When empty, captured errors are only logged.",
		OptType:   types.String,
		ConfigKey: configKey,
		Required:  false,
	}
}

func EnvironmentOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "environment",
		Usage:       "The environment name reported along with captured errors.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: "development",
		Required:    false,
	}
}

// ConnectionTimeoutOptions returns the per-connection timeout options of the responder.
func ConnectionTimeoutOptions(timeouts *serve.ConnectionTimeouts) config.ConfigOptions {
	return config.ConfigOptions{
		{
			Name:        "read-header-timeout-seconds",
			Usage:       "Maximum time to read the request headers.",
			OptType:     types.Int,
			ConfigKey:   &timeouts.ReadHeaderSeconds,
			FlagDefault: 10,
			Required:    false,
		},
		{
			Name:        "read-timeout-seconds",
			Usage:       "Maximum time to read the whole request.",
			OptType:     types.Int,
			ConfigKey:   &timeouts.ReadSeconds,
			FlagDefault: 30,
			Required:    false,
		},
		{
			Name:        "write-timeout-seconds",
			Usage:       "Maximum time to write the response.",
			OptType:     types.Int,
			ConfigKey:   &timeouts.WriteSeconds,
			FlagDefault: 30,
			Required:    false,
		},
		{
			Name:        "idle-timeout-seconds",
			Usage:       "Maximum time a keep-alive connection waits for the next request.",
			OptType:     types.Int,
			ConfigKey:   &timeouts.IdleSeconds,
			FlagDefault: 120,
			Required:    false,
		},
		{
			Name:        "shutdown-grace-period-seconds",
			Usage:       "Time given to in-flight requests to finish once a shutdown signal is received.",
			OptType:     types.Int,
			ConfigKey:   &timeouts.ShutdownGracePeriodSeconds,
			FlagDefault: 10,
			Required:    false,
		},
	}
}
