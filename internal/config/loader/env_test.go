package loader

import "testing"

func TestEnvLoader_PrefixScan(t *testing.T) {
	t.Setenv("GUNICORN_WORKERS", "4")
	t.Setenv("GUNICORN_WORKER_CLASS", "sync")
	t.Setenv("GUNICORN_DAEMON", "true")
	t.Setenv("OTHER_WORKERS", "99")

	values, err := NewEnvLoader("GUNICORN_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if values["workers"] != "4" {
		t.Errorf("workers = %v, want \"4\"", values["workers"])
	}
	if values["worker_class"] != "sync" {
		t.Errorf("worker_class = %v, want sync", values["worker_class"])
	}
	if values["daemon"] != "true" {
		t.Errorf("daemon = %v, want \"true\"", values["daemon"])
	}
	if _, ok := values["other_workers"]; ok {
		t.Error("unprefixed variable leaked into values")
	}
}

func TestEnvLoader_ExplicitMapping(t *testing.T) {
	t.Setenv("GUNICORN_ADDRESS", "0.0.0.0:9000")

	l := NewEnvLoaderWithMapping("GUNICORN_", map[string]string{
		"GUNICORN_ADDRESS": "bind",
	})
	values, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if values["bind"] != "0.0.0.0:9000" {
		t.Errorf("bind = %v, want 0.0.0.0:9000", values["bind"])
	}
	if _, ok := values["address"]; ok {
		t.Error("mapped variable also surfaced under its scanned name")
	}
}

func TestEnvLoader_EmptyValueIsSet(t *testing.T) {
	t.Setenv("GUNICORN_PIDFILE", "")

	values, err := NewEnvLoader("GUNICORN_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, ok := values["pidfile"]; !ok || v != "" {
		t.Errorf("pidfile = %v (present=%v), want present empty string", v, ok)
	}
}
