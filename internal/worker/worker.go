// Package worker provides the worker-class registry consulted by the
// worker_class setting. The server runtime registers its worker
// implementations here before the configuration is built; the config
// layer only resolves names to types.
package worker

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Type identifies a worker implementation selectable through the
// worker_class setting.
type Type interface {
	// Name is the identifier used in the worker_class setting.
	Name() string
}

// ErrUnknownClass is returned when a worker_class string names no
// registered type.
var ErrUnknownClass = errors.New("unknown worker class")

// ErrDuplicateClass is returned when registering a name twice.
var ErrDuplicateClass = errors.New("duplicate worker class")

var (
	mu      sync.Mutex
	classes = map[string]Type{}
	once    sync.Once
)

func registerBuiltins() {
	classes["sync"] = SyncWorker{}
}

// Register adds a worker type under its name.
func Register(t Type) error {
	once.Do(registerBuiltins)

	mu.Lock()
	defer mu.Unlock()

	if _, exists := classes[t.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, t.Name())
	}
	classes[t.Name()] = t
	return nil
}

// Resolve returns the worker type registered under uri.
func Resolve(uri string) (Type, error) {
	once.Do(registerBuiltins)

	mu.Lock()
	defer mu.Unlock()

	t, ok := classes[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, uri)
	}
	return t, nil
}

// Names returns the registered class names, sorted.
func Names() []string {
	once.Do(registerBuiltins)

	mu.Lock()
	defer mu.Unlock()

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SyncWorker is the built-in one-request-at-a-time worker class.
type SyncWorker struct{}

// Name implements Type.
func (SyncWorker) Name() string { return "sync" }
