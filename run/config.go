package run

import (
	"fmt"
	"os"

	"github.com/relex/slog-client/sink"
	"gopkg.in/yaml.v3"
)

// Config defines the root of slog-client config file
//
// All values are resolved once at startup and passed down explicitly; nothing on the write path
// reads configuration afterwards.
type Config struct {
	Sink            sink.Config `yaml:"sink"`
	Service         string      `yaml:"service"`         // Service name stamped on every record, defaults to hostname
	BatchSize       int         `yaml:"batchSize"`       // Records per batch before a size-triggered flush
	FlushIntervalMS int         `yaml:"flushIntervalMS"` // Max buffering delay in milliseconds
}

// LoadConfigFile loads config from the path and applies defaults
//
// Unknown fields are rejected to catch typos early. Non-positive thresholds are left as-is here
// and fall back to defaults inside the transport.
func LoadConfigFile(filepath string) (*Config, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cref := &Config{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cref); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath, err)
	}

	if cref.Service == "" {
		if hostname, err := os.Hostname(); err == nil {
			cref.Service = hostname
		} else {
			cref.Service = "unknown"
		}
	}
	return cref, nil
}

// VerifyConfig checks requirements that must fail at startup, not at first write
//
// localMode skips the sink address requirement since the null sink needs none.
func (config *Config) VerifyConfig(localMode bool) error {
	if !localMode && config.Sink.Address == "" {
		return fmt.Errorf("sink.address is required outside local mode")
	}
	return nil
}
