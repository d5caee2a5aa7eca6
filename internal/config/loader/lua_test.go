package loader

import (
	"path/filepath"
	"testing"

	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/dshills/gunicorn/internal/config/validate"
)

func newScriptRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.MustRegister(registry.Setting{Name: "bind", Validator: validate.String})
	r.MustRegister(registry.Setting{Name: "workers", Validator: validate.PosInt})
	r.MustRegister(registry.Setting{Name: "daemon", Validator: validate.Bool})
	r.MustRegister(registry.Setting{
		Name:      "post_fork",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
	})
	return r
}

func TestScriptLoader_Scalars(t *testing.T) {
	path := writeFile(t, "gunicorn.lua", `
bind = "0.0.0.0:" .. tostring(8000 + 1000)
workers = 2 * 2
daemon = true
unrelated = "ignored"
`)

	l := NewScriptLoader(path, newScriptRegistry(t))
	defer l.Close()

	values, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if values["bind"] != "0.0.0.0:9000" {
		t.Errorf("bind = %v, want 0.0.0.0:9000", values["bind"])
	}
	if values["workers"] != 4 {
		t.Errorf("workers = %v (%T), want int 4", values["workers"], values["workers"])
	}
	if values["daemon"] != true {
		t.Errorf("daemon = %v, want true", values["daemon"])
	}
	if _, ok := values["unrelated"]; ok {
		t.Error("unregistered global leaked into values")
	}
}

func TestScriptLoader_WrapsHooks(t *testing.T) {
	path := writeFile(t, "hooks.lua", `
calls = 0
function post_fork(server, worker)
	calls = calls + 1
end
`)

	reg := newScriptRegistry(t)
	l := NewScriptLoader(path, reg)
	defer l.Close()

	values, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	hookVal, ok := values["post_fork"]
	if !ok {
		t.Fatal("post_fork hook missing from values")
	}

	// The wrapped hook passes the callable validator at its declared
	// arity.
	if _, err := validate.Callable(2)(hookVal); err != nil {
		t.Fatalf("wrapped hook fails arity validation: %v", err)
	}

	hook, ok := hookVal.(func(a, b any))
	if !ok {
		t.Fatalf("hook type = %T, want func(any, any)", hookVal)
	}

	// Scalars cross as Lua values, anything else as opaque userdata;
	// either way the protected call must not blow up.
	type server struct{ name string }
	hook("server", 7)
	hook(&server{name: "master"}, nil)
}

func TestScriptLoader_MissingFileIsNotAnError(t *testing.T) {
	l := NewScriptLoader(filepath.Join(t.TempDir(), "absent.lua"), newScriptRegistry(t))
	defer l.Close()

	values, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if values != nil {
		t.Errorf("values = %v, want nil", values)
	}
}

func TestScriptLoader_SyntaxError(t *testing.T) {
	path := writeFile(t, "broken.lua", `workers = = 1`)

	l := NewScriptLoader(path, newScriptRegistry(t))
	defer l.Close()

	if _, err := l.Load(); err == nil {
		t.Fatal("Load succeeded on broken script")
	}
}

func TestScriptLoader_SandboxBlocksOS(t *testing.T) {
	path := writeFile(t, "sandbox.lua", `
if os ~= nil or io ~= nil then
	error("machine access available")
end
workers = 1
`)

	l := NewScriptLoader(path, newScriptRegistry(t))
	defer l.Close()

	values, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if values["workers"] != 1 {
		t.Errorf("workers = %v, want 1", values["workers"])
	}
}
