package parser

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperterse/dataexplorer/core/domain"
)

type rawConfig struct {
	Host     yaml.Node  `yaml:"host"`
	APIKey   yaml.Node  `yaml:"api_key"`
	LogLevel yaml.Node  `yaml:"log_level"`
	Server   *rawServer `yaml:"server"`
	// Queries is kept as a node so the mapping order survives
	Queries yaml.Node `yaml:"queries"`
}

type rawServer struct {
	Port yaml.Node `yaml:"port"`
}

type rawQuery struct {
	ID          yaml.Node            `yaml:"id"`
	Description string               `yaml:"description"`
	Params      map[string]yaml.Node `yaml:"params"`
}

// ParseYAML parses a configuration file into a Model. Queries keep the order
// in which they are written.
func ParseYAML(data []byte) (*domain.Model, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	model := &domain.Model{}

	var err error
	if model.Host, err = scalarString(&raw.Host, "host"); err != nil {
		return nil, err
	}
	if model.APIKey, err = scalarString(&raw.APIKey, "api_key"); err != nil {
		return nil, err
	}

	level, err := scalarString(&raw.LogLevel, "log_level")
	if err != nil {
		return nil, err
	}
	if level != "" {
		model.LogLevel, err = strconv.Atoi(level)
		if err != nil {
			return nil, fmt.Errorf("log_level must be an integer between 0 and 4, got '%s'", level)
		}
	}

	if raw.Server != nil {
		port, err := scalarString(&raw.Server.Port, "server.port")
		if err != nil {
			return nil, err
		}
		model.Server = &domain.Server{Port: port}
	}

	queries, err := parseQueries(&raw.Queries)
	if err != nil {
		return nil, err
	}
	model.Queries = queries

	return model, nil
}

func parseQueries(node *yaml.Node) ([]*domain.QueryDefinition, error) {
	if node.Kind == 0 || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: queries must be a mapping of query names to definitions", node.Line)
	}

	queries := make([]*domain.QueryDefinition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		name := keyNode.Value

		var raw rawQuery
		if err := valueNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid query structure for '%s': %w", name, err)
		}

		id, err := scalarString(&raw.ID, fmt.Sprintf("queries.%s.id", name))
		if err != nil {
			return nil, err
		}

		query := &domain.QueryDefinition{
			Name:        name,
			ID:          domain.QueryID(id),
			Description: strings.TrimSpace(raw.Description),
		}

		if len(raw.Params) > 0 {
			query.Params = make(map[string]string, len(raw.Params))
			for key, paramNode := range raw.Params {
				value, err := scalarString(&paramNode, fmt.Sprintf("queries.%s.params.%s", name, key))
				if err != nil {
					return nil, err
				}
				query.Params[key] = value
			}
		}

		queries = append(queries, query)
	}
	return queries, nil
}

// scalarString returns the text of a scalar node. Numbers and booleans are
// returned as written; a missing or null node yields "".
func scalarString(node *yaml.Node, field string) (string, error) {
	if node.Kind == 0 || isNull(node) {
		return "", nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: %s must be a scalar value", node.Line, field)
	}
	return node.Value, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
