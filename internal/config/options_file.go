package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadOptionsFile reads an option set from a YAML or TOML file, chosen by
// extension. Anything other than .toml is read as YAML.
func LoadOptionsFile(path string) (*command.OptionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}

	parse := ParseOptionsYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseOptionsTOML
	}
	opts, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return opts, nil
}

// ParseOptionsYAML parses a YAML mapping into an option set, keeping the
// document order of keys.
//
//	repo: https://github.com/gruntwork-io/module-ecs
//	tag: 0.1.5
//	source-path:
//	  - /modules/ecs-cluster
//	  - /modules/ecs-service
//	help: true
//
// Scalars become single values (split on commas when built), sequences
// become lists, and booleans, nulls or a numeric zero become flags.
func ParseOptionsYAML(data []byte) (*command.OptionSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	opts := command.NewOptionSet()
	if len(doc.Content) == 0 {
		return opts, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of option names to values", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: option name must be a non-empty string", key.Line)
		}

		v, err := yamlOptionValue(value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key.Value, err)
		}
		opts.Set(key.Value, v)
	}

	return opts, nil
}

func yamlOptionValue(node *yaml.Node) (command.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null", "!!bool":
			return command.NoValue(), nil
		case "!!int", "!!float":
			if n, err := strconv.ParseFloat(node.Value, 64); err == nil && n == 0 {
				return command.NoValue(), nil
			}
			return command.String(node.Value), nil
		default:
			return command.String(node.Value), nil
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return command.Value{}, fmt.Errorf("line %d: list elements must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		return command.List(items...), nil
	default:
		return command.Value{}, fmt.Errorf("line %d: unsupported value", node.Line)
	}
}

// ParseOptionsTOML parses top-level TOML keys into an option set. TOML
// tables are unordered, so options come out sorted by name.
//
//	repo = "https://github.com/gruntwork-io/module-ecs"
//	source-path = ["/modules/ecs-cluster", "/modules/ecs-service"]
//	help = true
func ParseOptionsTOML(data []byte) (*command.OptionSet, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return command.FromMap(raw)
}
