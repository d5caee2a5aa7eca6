package config

import (
	"fmt"
	"sort"

	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/dshills/gunicorn/internal/worker"
)

// TypeResolver resolves a worker_class string into a worker type. The
// default resolver consults the in-process worker registry.
type TypeResolver func(uri string) (worker.Type, error)

// Config is a live configuration object built from a snapshot of the
// setting registry. It owns one independent ValueHolder per setting, so
// two Configs never alias state.
//
// Config is not safe for concurrent mutation; callers that share one
// across goroutines must serialize Set externally.
type Config struct {
	settings map[string]*registry.ValueHolder
	attrs    map[string]any
	usage    string
	resolve  TypeResolver
}

// Option configures a Config under construction.
type Option func(*options)

type options struct {
	registry *registry.Registry
	ignore   map[string]bool
	usage    string
	resolve  TypeResolver
}

// WithRegistry builds the Config from the given registry instead of the
// builtin catalog.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithIgnore excludes the named settings from the Config.
func WithIgnore(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.ignore[n] = true
		}
	}
}

// WithUsage sets the usage line reported to the CLI builder.
func WithUsage(usage string) Option {
	return func(o *options) {
		o.usage = usage
	}
}

// WithTypeResolver overrides the worker-class resolver.
func WithTypeResolver(resolve TypeResolver) Option {
	return func(o *options) {
		o.resolve = resolve
	}
}

// New builds a Config from a registry snapshot, instantiating one value
// holder per setting with its default applied through the validator. A
// default that fails validation aborts construction; no partially-built
// Config is returned.
func New(opts ...Option) (*Config, error) {
	o := &options{
		ignore:  make(map[string]bool),
		resolve: worker.Resolve,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = Builtin()
	}

	settings, err := o.registry.MakeSettings(o.ignore)
	if err != nil {
		return nil, err
	}

	return &Config{
		settings: settings,
		attrs:    make(map[string]any),
		usage:    o.usage,
		resolve:  o.resolve,
	}, nil
}

// Usage returns the usage line for generated CLI help.
func (c *Config) Usage() string {
	return c.usage
}

// Get returns the current typed value of the named setting.
func (c *Config) Get(name string) (any, error) {
	holder, ok := c.settings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return holder.Get(), nil
}

// Set runs the setting's validator on raw and replaces the held value on
// success. On failure the previous value is left unchanged and the
// validation error propagates to the caller.
func (c *Config) Set(name string, raw any) error {
	holder, ok := c.settings[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	if err := holder.Set(raw); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

// Attr reads by attribute name: a registered setting name is equivalent
// to Get, any other name reads the auxiliary attribute store. A name
// found in neither fails with ErrUnknownSetting.
func (c *Config) Attr(name string) (any, error) {
	if holder, ok := c.settings[name]; ok {
		return holder.Get(), nil
	}
	if v, ok := c.attrs[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
}

// SetAttr writes to the auxiliary attribute store. Assigning a registered
// setting name this way is forbidden; all setting mutation goes through
// Set so it cannot bypass validation.
func (c *Config) SetAttr(name string, value any) error {
	if _, ok := c.settings[name]; ok {
		return fmt.Errorf("%w: %s", ErrIllegalMutation, name)
	}
	c.attrs[name] = value
	return nil
}

// GetString returns the named setting as a string. A nil value reads as
// the empty string.
func (c *Config) GetString(name string) (string, error) {
	val, err := c.Get(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("setting %s: expected string, got %T", name, val)
	}
	return s, nil
}

// GetInt returns the named setting as an int. A nil value reads as zero.
func (c *Config) GetInt(name string) (int, error) {
	val, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, nil
	}
	n, ok := val.(int)
	if !ok {
		return 0, fmt.Errorf("setting %s: expected int, got %T", name, val)
	}
	return n, nil
}

// GetBool returns the named setting as a bool. A nil value reads as
// false.
func (c *Config) GetBool(name string) (bool, error) {
	val, err := c.Get(name)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, nil
	}
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("setting %s: expected bool, got %T", name, val)
	}
	return b, nil
}

// Has checks whether the named setting exists in this Config.
func (c *Config) Has(name string) bool {
	_, ok := c.settings[name]
	return ok
}

// Settings returns the Config's value holders in registration order.
func (c *Config) Settings() []*registry.ValueHolder {
	result := make([]*registry.ValueHolder, 0, len(c.settings))
	for _, holder := range c.settings {
		result = append(result, holder)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Setting().Order() < result[j].Setting().Order()
	})
	return result
}

// WorkerClass resolves the stored worker_class string through the type
// resolver. If the resolved type exposes a Setup operation it is invoked
// before the type is returned. Recomputed on every access so it always
// reflects the latest Set.
func (c *Config) WorkerClass() (worker.Type, error) {
	uri, err := c.GetString("worker_class")
	if err != nil {
		return nil, err
	}
	t, err := c.resolve(uri)
	if err != nil {
		return nil, err
	}
	if s, ok := t.(interface{ Setup() error }); ok {
		if err := s.Setup(); err != nil {
			return nil, fmt.Errorf("worker class %s: %w", uri, err)
		}
	}
	return t, nil
}

// Workers returns the configured worker process count.
func (c *Config) Workers() int {
	n, _ := c.GetInt("workers")
	return n
}

// Address parses the stored bind string into a structured endpoint.
func (c *Config) Address() (Address, error) {
	bind, err := c.GetString("bind")
	if err != nil {
		return Address{}, err
	}
	return ParseAddress(bind)
}

// UID returns the already-resolved user id.
func (c *Config) UID() int {
	n, _ := c.GetInt("user")
	return n
}

// GID returns the already-resolved group id.
func (c *Config) GID() int {
	n, _ := c.GetInt("group")
	return n
}

// ProcName returns the explicit proc_name setting when set, falling back
// to the internal default process name.
func (c *Config) ProcName() string {
	if v, err := c.Get("proc_name"); err == nil && v != nil {
		return v.(string)
	}
	name, _ := c.GetString("default_proc_name")
	return name
}
