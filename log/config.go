package log

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the optional log configuration file.
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	// zapfilter rules, for example "debug:telemetry,history info:*"
	Filters string `yaml:"filters"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read log config %s: %w", path, err)
	}
	ret := &Config{DefaultLevel: "info"}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("could not parse log config %s: %w", path, err)
	}
	return ret, nil
}
