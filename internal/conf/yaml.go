package conf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DumpYAML renders the effective settings as YAML, for inspection and for
// writing back an edited configuration.
func DumpYAML(settings *Settings) ([]byte, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("error marshaling settings to yaml: %w", err)
	}
	return data, nil
}
