package config

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/optstore/internal/options"
)

// ParseAssignments turns "key=value" strings into option overrides, keeping
// their order. Values are decoded as YAML scalars, so "0.5" becomes a float,
// "null" or "~" becomes nil, quoted text is unquoted and anything else stays
// the literal string. Keys are not checked against the store here.
func ParseAssignments(raw []string) ([]options.Override, error) {
	out := make([]options.Override, 0, len(raw))
	for _, assignment := range raw {
		key, rawValue, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option assignment %q, expected key=value", assignment)
		}

		value, err := parseScalar(rawValue)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", key, err)
		}
		out = append(out, options.Override{Key: key, Value: value})
	}
	return out, nil
}

func parseScalar(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil || len(node.Content) == 0 {
		// patterns such as "[a-z]+" are not valid YAML
		return raw, nil
	}
	if node.Content[0].Kind != yaml.ScalarNode {
		return raw, nil
	}

	scalar := node.Content[0]
	switch scalar.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		var f float64
		if err := scalar.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode number: %w", err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("number must be finite, got %s", scalar.Value)
		}
		return f, nil
	case "!!bool":
		var b bool
		if err := scalar.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode bool: %w", err)
		}
		return b, nil
	default:
		if scalar.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			return scalar.Value, nil
		}
		return strings.TrimSpace(raw), nil
	}
}
