package config

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrMalformed marks a config value that cannot be used.
var ErrMalformed = errors.New("malformed config")

const auto = "auto"

// parser looks options up one by one, warning about missing ones.
type parser struct {
	log logrus.FieldLogger
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func malformed(path, format string, args ...any) error {
	return errors.Wrapf(errors.Mark(errors.Newf(format, args...), ErrMalformed), "option %s", path)
}

// get returns the value under key in a mapping node, or nil.
func get(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// section returns the mapping under key, or nil with a warning when it is
// missing.
func (p *parser) section(mapping *yaml.Node, path, key string) (*yaml.Node, error) {
	node := get(mapping, key)
	if node == nil {
		p.log.WithField("option", join(path, key)).Warn("Config file is missing a section, using the default value")
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, malformed(join(path, key), "expected a mapping")
	}
	return node, nil
}

// entries returns the key/value pairs of a mapping node.
func entries(mapping *yaml.Node) [][2]*yaml.Node {
	var out [][2]*yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		out = append(out, [2]*yaml.Node{mapping.Content[i], mapping.Content[i+1]})
	}
	return out
}

// scalar returns the string value under key and whether it was present.
func (p *parser) scalar(mapping *yaml.Node, path, key string) (string, bool, error) {
	node := get(mapping, key)
	if node == nil {
		p.log.WithField("option", join(path, key)).Warn("Config file is missing an option, using the default value")
		return "", false, nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", false, malformed(join(path, key), "expected a scalar")
	}
	return node.Value, true, nil
}

// autoString returns "" for a missing option or "auto".
func (p *parser) autoString(mapping *yaml.Node, path, key string) (string, error) {
	value, ok, err := p.scalar(mapping, path, key)
	if err != nil || !ok || value == auto {
		return "", err
	}
	return value, nil
}

func (p *parser) boolean(mapping *yaml.Node, path, key string, fallback bool) (bool, error) {
	value, ok, err := p.scalar(mapping, path, key)
	if err != nil || !ok {
		return fallback, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, malformed(join(path, key), "%q is not a boolean", value)
	}
	return parsed, nil
}

func (p *parser) integer(mapping *yaml.Node, path, key string, fallback int) (int, error) {
	value, ok, err := p.scalar(mapping, path, key)
	if err != nil || !ok {
		return fallback, err
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, malformed(join(path, key), "%q is not an integer", value)
	}
	return parsed, nil
}

// requiredInteger has no default: a missing or automatic value is
// malformed.
func (p *parser) requiredInteger(mapping *yaml.Node, path, key string) (int, error) {
	node := get(mapping, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, malformed(join(path, key), "a value is required")
	}
	parsed, err := strconv.Atoi(node.Value)
	if err != nil {
		return 0, malformed(join(path, key), "%q is not an integer", node.Value)
	}
	return parsed, nil
}

// autoFloat returns nil for a missing option or "auto".
func (p *parser) autoFloat(mapping *yaml.Node, path, key string) (*float64, error) {
	value, err := p.autoString(mapping, path, key)
	if err != nil || value == "" {
		return nil, err
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, malformed(join(path, key), "%q is not a number", value)
	}
	return &parsed, nil
}
