package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"
)

func fakeEnv(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func fakeFiles(m map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		if v, ok := m[path]; ok {
			return []byte(v), nil
		}
		return nil, os.ErrNotExist
	}
}

func TestLoaderDefaults(t *testing.T) {
	cfg, err := (Loader{Lookup: fakeEnv(nil)}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serializer != DefaultSerializer {
		t.Errorf("Serializer = %q, want default %q", cfg.Serializer, DefaultSerializer)
	}
	if cfg.QueueSize != DefaultQueueSize {
		t.Errorf("QueueSize = %d, want default %d", cfg.QueueSize, DefaultQueueSize)
	}
	if cfg.DropPolicy != DefaultDropPolicy {
		t.Errorf("DropPolicy = %q, want default %q", cfg.DropPolicy, DefaultDropPolicy)
	}
	if len(cfg.Listeners) != 0 {
		t.Errorf("Listeners = %v, want none", cfg.Listeners)
	}
}

func TestLoaderFromJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"XTRACE_CONFIG": `{"serializer": "extended", "template": "$LogDate(15:04) $Description",` +
			` "listeners": [{"type": "stderr"}, {"type": "file", "path": "/tmp/trace.log"}],` +
			` "async": true, "queue_size": 16, "drop_policy": "block"}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serializer != SerializerExtended {
		t.Errorf("Serializer = %q, want %q", cfg.Serializer, SerializerExtended)
	}
	if cfg.Template != "$LogDate(15:04) $Description" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if len(cfg.Listeners) != 2 || cfg.Listeners[1].Path != "/tmp/trace.log" {
		t.Errorf("Listeners = %+v", cfg.Listeners)
	}
	if !cfg.Async || cfg.QueueSize != 16 || cfg.DropPolicy != "block" {
		t.Errorf("async settings = %v %d %q", cfg.Async, cfg.QueueSize, cfg.DropPolicy)
	}
}

func TestLoaderFileThenInlineThenOverrides(t *testing.T) {
	env := fakeEnv(map[string]string{
		"XTRACE_CONFIG_FILE": "/etc/xtrace.yaml",
		"XTRACE_CONFIG":      `date_layout: "15:04"`,
		"XTRACE_TEMPLATE":    " $Context ",
		"XTRACE_ASYNC":       "true",
	})
	files := fakeFiles(map[string]string{
		"/etc/xtrace.yaml": "serializer: template\ntemplate: from-file\nlisteners:\n  - type: RUNTIME\n    category: app\n",
	})

	cfg, err := (Loader{Lookup: env, ReadFile: files}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Template != "$Context" {
		t.Errorf("Template = %q, want env override", cfg.Template)
	}
	if cfg.DateLayout != "15:04" {
		t.Errorf("DateLayout = %q, want inline value", cfg.DateLayout)
	}
	if len(cfg.Listeners) != 1 || cfg.Listeners[0].Type != ListenerRuntime || cfg.Listeners[0].Category != "app" {
		t.Errorf("Listeners = %+v", cfg.Listeners)
	}
	if !cfg.Async {
		t.Error("Async = false, want env override")
	}
}

func TestLoaderBadAsyncKeepsCause(t *testing.T) {
	env := fakeEnv(map[string]string{"XTRACE_ASYNC": "maybe"})
	_, err := (Loader{Lookup: env, ReadFile: fakeFiles(nil)}).Load()
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected *strconv.NumError cause, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "config: XTRACE_ASYNC: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoaderMissingFile(t *testing.T) {
	env := fakeEnv(map[string]string{"XTRACE_CONFIG_FILE": "/nope.yaml"})
	_, err := (Loader{Lookup: env, ReadFile: fakeFiles(nil)}).Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoaderRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad yaml":           {"XTRACE_CONFIG": "serializer: [unterminated"},
		"unknown serializer": {"XTRACE_SERIALIZER": "xml"},
		"bad async":          {"XTRACE_ASYNC": "sometimes"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := (Loader{Lookup: fakeEnv(env)}).Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"extended needs template", Config{Serializer: "extended"}, "template is required"},
		{"json with template", Config{Serializer: "json", Template: "$Context"}, "cannot be combined"},
		{"file needs path", Config{Listeners: []ListenerConfig{{Type: "file"}}}, "path is required"},
		{"unknown listener", Config{Listeners: []ListenerConfig{{Type: "syslog"}}}, "unknown type"},
		{"negative queue", Config{QueueSize: -1}, "queue_size"},
		{"unknown policy", Config{DropPolicy: "later"}, "drop_policy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}
