package observability

import (
	"os"
	"strconv"
	"strings"
)

// Config controls OpenTelemetry export. Everything is opt-in through
// DATAEXPLORER_OTEL_* environment variables.
type Config struct {
	Enabled           bool
	TracesEnabled     bool
	MetricsEnabled    bool
	ServiceName       string
	ServiceVersion    string
	Environment       string
	OTLPEndpoint      string
	TraceSamplingRate float64
}

// ResolveConfig builds the configuration from defaults and the environment.
func ResolveConfig(serviceVersion string) Config {
	cfg := Config{
		Enabled:           false,
		TracesEnabled:     true,
		MetricsEnabled:    true,
		ServiceName:       "dataexplorer",
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4317",
		TraceSamplingRate: 1.0,
	}
	if serviceVersion != "" {
		cfg.ServiceVersion = serviceVersion
	}

	overrideBool("DATAEXPLORER_OTEL_ENABLED", &cfg.Enabled)
	overrideBool("DATAEXPLORER_OTEL_TRACES_ENABLED", &cfg.TracesEnabled)
	overrideBool("DATAEXPLORER_OTEL_METRICS_ENABLED", &cfg.MetricsEnabled)
	overrideString("DATAEXPLORER_OTEL_SERVICE_NAME", &cfg.ServiceName)
	overrideString("DATAEXPLORER_OTEL_ENVIRONMENT", &cfg.Environment)
	overrideString("DATAEXPLORER_OTEL_ENDPOINT", &cfg.OTLPEndpoint)
	overrideFloat("DATAEXPLORER_OTEL_TRACE_SAMPLING_RATIO", &cfg.TraceSamplingRate)

	if cfg.TraceSamplingRate < 0 {
		cfg.TraceSamplingRate = 0
	}
	if cfg.TraceSamplingRate > 1 {
		cfg.TraceSamplingRate = 1
	}
	cfg.OTLPEndpoint = strings.TrimPrefix(strings.TrimPrefix(cfg.OTLPEndpoint, "http://"), "https://")

	return cfg
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideBool(name string, target *bool) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err == nil {
		*target = parsed
	}
}

func overrideFloat(name string, target *float64) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err == nil {
		*target = parsed
	}
}
