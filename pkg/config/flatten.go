package config

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Flatten returns every setting keyed by its dotted TOML path, e.g.
// "image.format" or "hotkeys.normal_screenshot".
func (c *Config) Flatten() (map[string]any, error) {
	var raw map[string]any
	if err := mapstructure.Decode(c, &raw); err != nil {
		return nil, fmt.Errorf("failed to flatten config: %w", err)
	}

	out := make(map[string]any)
	if err := flattenInto(out, "", raw); err != nil {
		return nil, err
	}
	return out, nil
}

// FlattenedKeys returns the keys of m sorted.
func FlattenedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flattenInto(out map[string]any, prefix string, v any) error {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			if err := flattenInto(out, joinKey(prefix, k), child); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		for k, child := range val {
			out[joinKey(prefix, k)] = child
		}
		return nil
	}

	// mapstructure may leave nested structs as values
	if v != nil && reflect.ValueOf(v).Kind() == reflect.Struct {
		var nested map[string]any
		if err := mapstructure.Decode(v, &nested); err != nil {
			return fmt.Errorf("failed to flatten %s: %w", prefix, err)
		}
		return flattenInto(out, prefix, nested)
	}

	out[prefix] = v
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
