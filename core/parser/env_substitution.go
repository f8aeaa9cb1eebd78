package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hyperterse/dataexplorer/core/domain"
)

var (
	// Environment variable pattern: {{ env.VARIABLE_NAME }}
	envVarPattern = regexp.MustCompile(`\{\{\s*env\.(\w+)\s*\}\}`)
)

// SubstituteEnvVars replaces {{ env.VARIABLE_NAME }} placeholders with
// environment variable values. An unset variable is an error.
func SubstituteEnvVars(value string) (string, error) {
	result := value
	matches := envVarPattern.FindAllStringSubmatch(value, -1)
	seen := make(map[string]bool)

	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		envVarName := match[1]
		placeholder := match[0]

		if seen[placeholder] {
			continue
		}
		seen[placeholder] = true

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			return "", fmt.Errorf("environment variable '%s' not found", envVarName)
		}

		result = strings.ReplaceAll(result, placeholder, envValue)
	}

	return result, nil
}

// SubstituteEnvVarsInModel substitutes placeholders in the host, the API key,
// the server port and every query param value.
func SubstituteEnvVarsInModel(model *domain.Model) error {
	if model == nil {
		return nil
	}

	var err error
	if model.Host, err = SubstituteEnvVars(model.Host); err != nil {
		return fmt.Errorf("configuration error: failed to substitute environment variables in host: %w", err)
	}
	if model.APIKey, err = SubstituteEnvVars(model.APIKey); err != nil {
		return fmt.Errorf("configuration error: failed to substitute environment variables in api_key: %w", err)
	}

	if model.Server != nil && model.Server.Port != "" {
		if model.Server.Port, err = SubstituteEnvVars(model.Server.Port); err != nil {
			return fmt.Errorf("configuration error: failed to substitute environment variables in port: %w", err)
		}
	}

	for _, query := range model.Queries {
		for key, value := range query.Params {
			substituted, err := SubstituteEnvVars(value)
			if err != nil {
				return fmt.Errorf("configuration error: failed to substitute environment variables in param '%s' of query '%s': %w", key, query.Name, err)
			}
			query.Params[key] = substituted
		}
	}

	return nil
}
