package loader

import (
	"os"
	"strings"
)

// EnvLoader loads setting values from environment variables. Values stay
// strings; the setting validators coerce them when applied.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "GUNICORN_")
	mapping map[string]string // Env var -> setting name
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "GUNICORN_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
	}
}

// NewEnvLoaderWithMapping creates a loader with explicit environment
// variable mappings on top of the prefix scan.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

// Load reads environment variables and returns a settings map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	values := make(map[string]any)

	// First, load explicitly mapped variables
	for env, name := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			values[name] = val
		}
	}

	// Then, scan for prefixed variables not in the mapping. The setting
	// name is the lowercased remainder: GUNICORN_WORKER_CLASS maps to
	// worker_class.
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		setting := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		if setting == "" {
			continue
		}
		values[setting] = value
	}

	return values, nil
}
