package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// decodeTOMLFile parses the file at path into v.
func decodeTOMLFile(path string, v any) error {
	_, err := toml.DecodeFile(path, v)
	return err
}

// encodeTOMLFile writes v to path as TOML, replacing the file.
func encodeTOMLFile(v any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}

// parseLoose decodes the file into an untyped map. A file that fails the
// strict struct decode often still holds usable sections; the caller picks
// out whatever keys carry the expected types.
func parseLoose(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loose := make(map[string]any)
	if _, err := toml.Decode(string(data), &loose); err != nil {
		return nil, err
	}
	return loose, nil
}

// section pulls a named table out of loosely parsed TOML.
func section(data map[string]any, name string) (map[string]any, bool) {
	s, ok := data[name].(map[string]any)
	return s, ok
}

func intValue(data map[string]any, key string) (int, bool) {
	if v, ok := data[key].(int64); ok {
		return int(v), true
	}
	return 0, false
}

func boolValue(data map[string]any, key string) (bool, bool) {
	v, ok := data[key].(bool)
	return v, ok
}

func stringValue(data map[string]any, key string) (string, bool) {
	v, ok := data[key].(string)
	return v, ok
}
