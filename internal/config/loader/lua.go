package loader

import (
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gunicorn/internal/config/registry"
)

// ScriptLoader executes a Lua configuration script and collects globals
// whose names match registered settings. Scalar globals become raw
// values; functions assigned to hook settings are wrapped into Go
// closures of the descriptor's declared arity.
//
// The loader owns the Lua state. Wrapped hooks call back into the script,
// so the loader must not be closed while any hook it produced is still
// in use. gopher-lua states are not goroutine-safe; the loader's mutex
// serializes hook calls from Go.
type ScriptLoader struct {
	mu    sync.Mutex
	path  string
	reg   *registry.Registry
	state *lua.LState
}

// NewScriptLoader creates a loader for the given script path, resolving
// setting names and hook arities against reg.
func NewScriptLoader(path string, reg *registry.Registry) *ScriptLoader {
	return &ScriptLoader{
		path: path,
		reg:  reg,
	}
}

// Load executes the script and returns the settings map.
// Returns nil, nil if the script doesn't exist (not an error).
func (l *ScriptLoader) Load() (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return nil, nil
	}

	// Replace any state from a previous Load.
	if l.state != nil {
		l.state.Close()
		l.state = nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)

	if err := L.DoFile(l.path); err != nil {
		L.Close()
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	l.state = L

	values := make(map[string]any)
	for _, s := range l.reg.All() {
		lv := L.GetGlobal(s.Name)
		if lv == lua.LNil {
			continue
		}
		switch v := lv.(type) {
		case lua.LBool:
			values[s.Name] = bool(v)
		case lua.LString:
			values[s.Name] = string(v)
		case lua.LNumber:
			f := float64(v)
			if f == float64(int64(f)) {
				values[s.Name] = int(f)
			} else {
				values[s.Name] = f
			}
		case *lua.LFunction:
			if hook := l.wrapHook(v, s.Arity); hook != nil {
				values[s.Name] = hook
			}
		}
	}
	return values, nil
}

// Close releases the Lua state. Hooks produced by this loader must not
// be called afterward.
func (l *ScriptLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != nil {
		l.state.Close()
		l.state = nil
	}
}

// openLibraries opens only the safe standard libraries. io, os, debug,
// and package stay closed: a config script computes values, it does not
// touch the machine.
func openLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// wrapHook wraps a Lua function into a Go closure matching the hook's
// declared arity, so it passes the callable validator.
func (l *ScriptLoader) wrapHook(fn *lua.LFunction, arity int) any {
	switch arity {
	case 1:
		return func(a any) { l.call(fn, a) }
	case 2:
		return func(a, b any) { l.call(fn, a, b) }
	default:
		return nil
	}
}

// call invokes a script hook under the loader's mutex. The call is
// protected: a failing hook must not take the server down, and errors in
// script hooks are the script author's to debug.
func (l *ScriptLoader) call(fn *lua.LFunction, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == nil {
		return
	}

	lvs := make([]lua.LValue, len(args))
	for i, a := range args {
		lvs[i] = l.toLua(a)
	}
	_ = l.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lvs...)
}

// toLua converts a Go hook argument to a Lua value. Arbitrary runtime
// objects cross as opaque userdata.
func (l *ScriptLoader) toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	default:
		ud := l.state.NewUserData()
		ud.Value = v
		return ud
	}
}
