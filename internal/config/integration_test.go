package config

import (
	"strings"
	"testing"

	"github.com/dshills/gunicorn/internal/config/loader"
)

// Loading a config file and applying it through Set is the normal startup
// path: every loaded value still passes through the validators.
func TestConfig_AppliesLoadedFile(t *testing.T) {
	cfg := newTestConfig(t)

	values, err := loader.NewTOMLLoader("").LoadFromReader(strings.NewReader(`
bind = "unix:/run/app.sock"
workers = 4
umask = "022"
daemon = true
proc_name = "myapp"
`))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	for name, value := range values {
		if err := cfg.Set(name, value); err != nil {
			t.Fatalf("Set(%s) failed: %v", name, err)
		}
	}

	addr, err := cfg.Address()
	if err != nil {
		t.Fatalf("Address failed: %v", err)
	}
	if addr.Network != "unix" || addr.Path != "/run/app.sock" {
		t.Errorf("address = %+v, want unix /run/app.sock", addr)
	}
	if cfg.Workers() != 4 {
		t.Errorf("workers = %d, want 4", cfg.Workers())
	}
	// "022" parses as octal under base-0 rules.
	if n, _ := cfg.GetInt("umask"); n != 18 {
		t.Errorf("umask = %d, want 18", n)
	}
	if d, _ := cfg.GetBool("daemon"); !d {
		t.Error("daemon = false, want true")
	}
	if cfg.ProcName() != "myapp" {
		t.Errorf("ProcName() = %q, want myapp", cfg.ProcName())
	}
}

// A bad value in a loaded file surfaces with the setting named and leaves
// the configuration's prior value intact.
func TestConfig_LoadedFileValidationError(t *testing.T) {
	cfg := newTestConfig(t)

	err := cfg.Set("workers", "-2")
	if err == nil {
		t.Fatal("Set(workers, -2) succeeded")
	}
	if !strings.Contains(err.Error(), "workers") {
		t.Errorf("error %q does not name the setting", err)
	}
	if cfg.Workers() != 1 {
		t.Errorf("workers = %d, want untouched default 1", cfg.Workers())
	}
}
