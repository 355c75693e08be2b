package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration from environment variables. Tests can override
// Lookup and ReadFile to inject deterministic inputs.
//
//	XTRACE_CONFIG_FILE   path of a YAML document
//	XTRACE_CONFIG        inline YAML or JSON document, applied after the file
//	XTRACE_SERIALIZER    overrides serializer
//	XTRACE_TEMPLATE      overrides template
//	XTRACE_ASYNC         overrides async (strconv.ParseBool syntax)
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load retrieves the configuration and validates it.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	var cfg Config

	if path, ok := l.Lookup("XTRACE_CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		data, err := l.ReadFile(strings.TrimSpace(path))
		if err != nil {
			return Config{}, errors.Wrap(err, "config: read XTRACE_CONFIG_FILE")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decode %s", path)
		}
	}
	if raw, ok := l.Lookup("XTRACE_CONFIG"); ok && strings.TrimSpace(raw) != "" {
		// JSON is a subset of YAML, so one decoder serves both.
		if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
			return Config{}, errors.Wrap(err, "config: decode XTRACE_CONFIG")
		}
	}

	overrideString(l.Lookup, "XTRACE_SERIALIZER", &cfg.Serializer)
	overrideString(l.Lookup, "XTRACE_TEMPLATE", &cfg.Template)
	if v, ok := l.Lookup("XTRACE_ASYNC"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, errors.Wrap(err, "config: XTRACE_ASYNC")
		}
		cfg.Async = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if lookup == nil || target == nil {
		return
	}
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}
