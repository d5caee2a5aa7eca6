package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateSetting is returned when attempting to register a setting
// whose name is already taken.
var ErrDuplicateSetting = errors.New("duplicate setting")

// Registry is an append-only ordered catalog of setting descriptors. It
// is populated during a single-threaded startup phase and treated as
// frozen afterward; the mutex only guards registration itself.
type Registry struct {
	mu      sync.Mutex
	ordered []*Setting
	byName  map[string]*Setting
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*Setting),
	}
}

// Register appends a setting to the catalog, assigning its order index.
// Returns ErrDuplicateSetting if the name is already registered.
func (r *Registry) Register(setting Setting) error {
	if setting.Name == "" {
		return fmt.Errorf("setting has no name")
	}
	if setting.Validator == nil {
		return fmt.Errorf("setting %s has no validator", setting.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[setting.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSetting, setting.Name)
	}

	setting.order = len(r.ordered)
	setting.normalizeDesc()

	s := &setting // Copy to heap
	r.ordered = append(r.ordered, s)
	r.byName[setting.Name] = s
	return nil
}

// MustRegister registers a setting and panics on error. Used for the
// built-in catalog, where a collision is a programming error.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Get returns the descriptor for the given name, or nil if unregistered.
func (r *Registry) Get(name string) *Setting {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[name]
}

// Has checks if a setting is registered.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.byName[name]
	return exists
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ordered)
}

// All returns all registered settings in registration order.
func (r *Registry) All() []*Setting {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*Setting, len(r.ordered))
	copy(result, r.ordered)
	return result
}

// MakeSettings walks the catalog in registration order and creates one
// fresh ValueHolder per descriptor, skipping names in ignore. Non-nil
// defaults are passed through the descriptor's validator immediately; a
// failure there indicates a broken declaration and aborts construction.
func (r *Registry) MakeSettings(ignore map[string]bool) (map[string]*ValueHolder, error) {
	settings := make(map[string]*ValueHolder)
	for _, s := range r.All() {
		if ignore[s.Name] {
			continue
		}
		holder := &ValueHolder{setting: s}
		if s.Default != nil {
			if err := holder.Set(s.Default); err != nil {
				return nil, fmt.Errorf("invalid default for setting %s: %w", s.Name, err)
			}
		}
		settings[s.Name] = holder
	}
	return settings, nil
}

// ValueHolder is the live, mutable cell backing one setting within one
// configuration object. Holders are never shared: each MakeSettings call
// produces an independent set.
type ValueHolder struct {
	setting *Setting
	value   any
}

// Setting returns the descriptor this holder is bound to.
func (h *ValueHolder) Setting() *Setting {
	return h.setting
}

// Get returns the current typed value.
func (h *ValueHolder) Get() any {
	return h.value
}

// Set runs the descriptor's validator on raw and, on success, replaces
// the held value. On failure the previous value is left intact.
func (h *ValueHolder) Set(raw any) error {
	typed, err := h.setting.Validator(raw)
	if err != nil {
		return err
	}
	h.value = typed
	return nil
}
