package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/hyperterse/dataexplorer/core/cli/internal/credentials"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/logger"
	"github.com/hyperterse/dataexplorer/core/parser"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

const (
	// EnvHost overrides the configured forum hostname
	EnvHost = "DISCOURSE_HOST"
	// EnvAPIKey overrides the configured API key
	EnvAPIKey = "DISCOURSE_API_KEY"

	defaultPort = "8080"
)

// LoadConfig reads, parses, substitutes and validates a configuration file
func LoadConfig(filePath string) (*domain.Model, error) {
	if !strings.HasSuffix(filePath, ".yaml") && !strings.HasSuffix(filePath, ".yml") {
		return nil, apperrors.NewAppError(
			apperrors.ErrCodeConfigError,
			fmt.Sprintf("unsupported configuration file %s (expected .yaml or .yml)", filePath),
			nil,
		)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfigError, "error reading file", err)
	}
	return loadModel(content)
}

// LoadConfigFromString loads a configuration from a YAML string
func LoadConfigFromString(yamlContent string) (*domain.Model, error) {
	return loadModel([]byte(yamlContent))
}

func loadModel(content []byte) (*domain.Model, error) {
	model, err := parser.ParseYAML(content)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfigError, "config error", err)
	}
	if err := parser.SubstituteEnvVarsInModel(model); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfigError, "config error", err)
	}
	if err := parser.Validate(model); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeValidationError, "invalid configuration", err)
	}
	return model, nil
}

// ResolveHost resolves the forum hostname from CLI flag, env var, or config file
func ResolveHost(cliHost string, model *domain.Model) string {
	if cliHost != "" {
		return cliHost
	}
	if host := os.Getenv(EnvHost); host != "" {
		return host
	}
	if model != nil {
		return model.Host
	}
	return ""
}

// ResolveAPIKey resolves the API key from CLI flag, env var, the keyring entry
// for host, or config file
func ResolveAPIKey(cliKey, host string, model *domain.Model) string {
	if cliKey != "" {
		return cliKey
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	if host != "" {
		key, err := credentials.Get(host)
		if err == nil {
			return key
		}
		logger.New("credentials").Debugf("No keyring entry for %s: %v", host, err)
	}
	if model != nil {
		return model.APIKey
	}
	return ""
}

// ResolvePort resolves the port from CLI flag, config file, env var, or default
func ResolvePort(cliPort string, model *domain.Model) string {
	if cliPort != "" {
		return cliPort
	}
	if model != nil && model.Server != nil && model.Server.Port != "" {
		return model.Server.Port
	}
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return defaultPort
}

// ResolveLogLevel resolves the log level from verbose flag, CLI flag, config file, or default
func ResolveLogLevel(verbose bool, cliLogLevel int, model *domain.Model) int {
	if verbose {
		return logger.LogLevelDebug
	}
	if cliLogLevel > 0 {
		return cliLogLevel
	}
	if model != nil && model.LogLevel > 0 {
		return model.LogLevel
	}
	return logger.LogLevelInfo
}

// ParseParams parses repeated key=value flags. Later keys win.
func ParseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, apperrors.NewAppError(
				apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid param %q (expected key=value)", pair),
				nil,
			)
		}
		params[key] = value
	}
	return params, nil
}
