package config

import (
	"strings"

	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
)

const (
	SerializerTemplate = "template"
	SerializerExtended = "extended"
	SerializerJSON     = "json"

	ListenerRuntime = "runtime"
	ListenerStdout  = "stdout"
	ListenerStderr  = "stderr"
	ListenerFile    = "file"

	DefaultSerializer = SerializerTemplate
	DefaultQueueSize  = 1024
	DefaultDropPolicy = "drop_newest"
)

// Config describes a trace destination: how records are rendered and which
// listeners receive the lines. With no Listeners the process-wide trace
// channel is used.
type Config struct {
	Serializer string           `yaml:"serializer" default:"template"`
	Template   string           `yaml:"template"`
	DateLayout string           `yaml:"date_layout"`
	Listeners  []ListenerConfig `yaml:"listeners"`

	// Retries retries a failed listener write with exponential backoff.
	Retries uint64 `yaml:"retries"`

	// Async moves listener writes to a background goroutine.
	Async      bool   `yaml:"async"`
	QueueSize  int    `yaml:"queue_size" default:"1024"`
	DropPolicy string `yaml:"drop_policy" default:"drop_newest"`
}

// ListenerConfig selects one listener. Path is required for "file";
// Category is used by "runtime".
type ListenerConfig struct {
	Type     string `yaml:"type"`
	Path     string `yaml:"path"`
	Category string `yaml:"category" default:"xtrace"`
}

// Validate applies defaults and raises an error for unusable settings.
func (c *Config) Validate() error {
	c.Serializer = strings.ToLower(strings.TrimSpace(c.Serializer))
	c.DropPolicy = strings.ToLower(strings.TrimSpace(c.DropPolicy))
	defaults.SetDefaults(c)

	switch c.Serializer {
	case SerializerTemplate, SerializerJSON:
	case SerializerExtended:
		if c.Template == "" {
			return errors.New("config: template is required for the extended serializer")
		}
	default:
		return errors.Errorf("config: unknown serializer %q", c.Serializer)
	}
	if c.Serializer == SerializerJSON && c.Template != "" {
		return errors.New("config: template cannot be combined with the json serializer")
	}

	for i := range c.Listeners {
		l := &c.Listeners[i]
		l.Type = strings.ToLower(strings.TrimSpace(l.Type))
		defaults.SetDefaults(l)
		switch l.Type {
		case ListenerRuntime, ListenerStdout, ListenerStderr:
		case ListenerFile:
			if l.Path == "" {
				return errors.Errorf("config: listeners[%d]: path is required for file listener", i)
			}
		default:
			return errors.Errorf("config: listeners[%d]: unknown type %q", i, l.Type)
		}
	}

	if c.QueueSize < 0 {
		return errors.Errorf("config: queue_size must not be negative, got %d", c.QueueSize)
	}
	switch c.DropPolicy {
	case "drop_newest", "drop_oldest", "block":
	default:
		return errors.Errorf("config: unknown drop_policy %q", c.DropPolicy)
	}
	return nil
}
