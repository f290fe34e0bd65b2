package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadEncounter reads an encounter file over the built-in defaults, so a file
// only needs the keys it changes. An empty path yields the defaults.
func LoadEncounter(path string) (*Encounter, error) {
	enc := DefaultEncounter()
	if path == "" {
		return enc, nil
	}
	if err := loadYAML(path, enc); err != nil {
		return nil, fmt.Errorf("load encounter %s: %w", path, err)
	}
	return enc, nil
}
