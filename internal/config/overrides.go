package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ApplyOverrides decodes "key=value" pairs onto c. Nested fields use dots,
// e.g. "start.row=4". Values are weakly typed, so "speed_ms=20" and
// "timeout=5s" both work.
func (c *Config) ApplyOverrides(pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	input := make(map[string]any)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q: want key=value", pair)
		}
		setPath(input, strings.Split(strings.TrimSpace(key), "."), strings.TrimSpace(value))
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		Metadata:         &md,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

func setPath(m map[string]any, path []string, value string) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
