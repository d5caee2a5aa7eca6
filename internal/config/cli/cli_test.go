package cli

import (
	"testing"

	"github.com/dshills/gunicorn/internal/config"
	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/dshills/gunicorn/internal/config/validate"
)

func newConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	cfg, err := config.New(opts...)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	return cfg
}

func findSpec(specs []OptionSpec, dest string) (OptionSpec, bool) {
	for _, s := range specs {
		if s.Dest == dest {
			return s, true
		}
	}
	return OptionSpec{}, false
}

func TestOptions_SortedBySectionThenOrder(t *testing.T) {
	r := registry.New()
	// Registered out of display order on purpose.
	r.MustRegister(registry.Setting{
		Name: "zeta", Section: "B Section", CLI: []string{"--zeta"},
		Validator: validate.String, Desc: "Zeta.",
	})
	r.MustRegister(registry.Setting{
		Name: "alpha", Section: "A Section", CLI: []string{"--alpha"},
		Validator: validate.String, Desc: "Alpha.",
	})
	r.MustRegister(registry.Setting{
		Name: "beta", Section: "B Section", CLI: []string{"--beta"},
		Validator: validate.String, Desc: "Beta.",
	})

	specs := Options(newConfig(t, config.WithRegistry(r)))

	var got []string
	for _, s := range specs {
		got = append(got, s.Dest)
	}
	// Sections compare lexicographically; within B Section, zeta was
	// registered before beta so it stays first.
	want := []string{"alpha", "zeta", "beta"}
	if len(got) != len(want) {
		t.Fatalf("Options returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Options order = %v, want %v", got, want)
		}
	}
}

func TestOptions_SkipsFlaglessSettings(t *testing.T) {
	specs := Options(newConfig(t))

	for _, hidden := range []string{"tmp_upload_dir", "default_proc_name", "pre_fork"} {
		if _, ok := findSpec(specs, hidden); ok {
			t.Errorf("flagless setting %s produced an option spec", hidden)
		}
	}
}

func TestOptions_SpecContents(t *testing.T) {
	specs := Options(newConfig(t))

	bind, ok := findSpec(specs, "bind")
	if !ok {
		t.Fatal("no spec for bind")
	}
	if bind.Flags[0] != "-b" || bind.Flags[1] != "--bind" {
		t.Errorf("bind flags = %v, want [-b --bind]", bind.Flags)
	}
	if bind.Metavar != "ADDRESS" {
		t.Errorf("bind metavar = %q, want ADDRESS", bind.Metavar)
	}
	if bind.Help != "The socket to bind. [127.0.0.1:8000]" {
		t.Errorf("bind help = %q", bind.Help)
	}
	if bind.Action != registry.ActionStore || bind.Type != registry.TypeString {
		t.Errorf("bind action/type = %v/%v", bind.Action, bind.Type)
	}

	workers, ok := findSpec(specs, "workers")
	if !ok {
		t.Fatal("no spec for workers")
	}
	if workers.Type != registry.TypeInt {
		t.Errorf("workers type = %v, want int", workers.Type)
	}
	if workers.Name() != "workers" || workers.Shorthand() != "w" {
		t.Errorf("workers name/shorthand = %q/%q", workers.Name(), workers.Shorthand())
	}

	// Flag-style actions carry no separate value type.
	daemon, ok := findSpec(specs, "daemon")
	if !ok {
		t.Fatal("no spec for daemon")
	}
	if daemon.Action != registry.ActionStoreTrue {
		t.Errorf("daemon action = %v, want store_true", daemon.Action)
	}
	if daemon.Type != registry.TypeString {
		t.Errorf("daemon type = %v, want zero value (no type)", daemon.Type)
	}
	if daemon.Shorthand() != "D" {
		t.Errorf("daemon shorthand = %q, want D", daemon.Shorthand())
	}

	pid, ok := findSpec(specs, "pidfile")
	if !ok {
		t.Fatal("no spec for pidfile")
	}
	if pid.Name() != "pid" {
		t.Errorf("pidfile long flag name = %q, want pid", pid.Name())
	}
}

func TestOptions_Deterministic(t *testing.T) {
	cfg := newConfig(t)

	first := Options(cfg)
	for i := 0; i < 10; i++ {
		again := Options(cfg)
		for j := range first {
			if first[j].Dest != again[j].Dest {
				t.Fatalf("option order changed between calls at index %d", j)
			}
		}
	}
}

func TestFlagSet(t *testing.T) {
	cfg := newConfig(t)
	specs := Options(cfg)
	fs := FlagSet("gunicorn", specs)

	if err := fs.Parse([]string{"--workers", "4", "-b", "0.0.0.0:9000", "--daemon"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	n, err := fs.GetInt("workers")
	if err != nil || n != 4 {
		t.Errorf("workers flag = %d (%v), want 4", n, err)
	}
	bind, err := fs.GetString("bind")
	if err != nil || bind != "0.0.0.0:9000" {
		t.Errorf("bind flag = %q (%v), want 0.0.0.0:9000", bind, err)
	}
	daemon, err := fs.GetBool("daemon")
	if err != nil || !daemon {
		t.Errorf("daemon flag = %v (%v), want true", daemon, err)
	}

	// Flags carry no defaults; the config holds the real ones.
	if f := fs.Lookup("timeout"); f == nil {
		t.Error("no timeout flag")
	} else if f.Changed {
		t.Error("timeout flag marked changed without being set")
	}
}
