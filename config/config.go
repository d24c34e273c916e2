package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config carries the scalar settings consumed by the server core.
type Config struct {
	Port            int
	EnableMetrics   bool
	EnableTelemetry bool
}

func Default() Config {
	return Config{
		Port:          8080,
		EnableMetrics: true,
	}
}

// Load reads settings from JAZZY_* environment variables, falling back
// to defaults: JAZZY_PORT, JAZZY_METRICS_ENABLED, JAZZY_TELEMETRY_ENABLED.
func Load() Config {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("telemetry.enabled", false)

	v.SetEnvPrefix("jazzy")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return Config{
		Port:            v.GetInt("port"),
		EnableMetrics:   v.GetBool("metrics.enabled"),
		EnableTelemetry: v.GetBool("telemetry.enabled"),
	}
}
