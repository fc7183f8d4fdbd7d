package jobs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Column is a 0-based catalog column index. Definition files may give it as
// a number or as a numeric string.
type Column int

func parseColumn(raw string) (Column, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return Column(n), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("subtitle_column: %q is not an integer", raw)
	}
	return Column(int(f)), nil
}

// UnmarshalJSON accepts 3, 3.0, or "3".
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		parsed, err := parseColumn(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return err
		}
		*c = parsed
	case string:
		parsed, err := parseColumn(v)
		if err != nil {
			return err
		}
		*c = parsed
	default:
		return fmt.Errorf("subtitle_column: unsupported value %s", string(data))
	}
	return nil
}

// UnmarshalYAML accepts integer and string scalars.
func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("subtitle_column: line %d: expected a scalar", node.Line)
	}
	parsed, err := parseColumn(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalText is used by the TOML decoder for both integer and string
// values.
func (c *Column) UnmarshalText(text []byte) error {
	parsed, err := parseColumn(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
