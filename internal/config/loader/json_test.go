package loader

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONLoader_Load(t *testing.T) {
	path := writeFile(t, "gunicorn.json", `{
		"bind": "unix:/tmp/app.sock",
		"workers": 8,
		"preload_app": true,
		"proc_name": null
	}`)

	values, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if values["bind"] != "unix:/tmp/app.sock" {
		t.Errorf("bind = %v", values["bind"])
	}
	if values["workers"] != int64(8) {
		t.Errorf("workers = %v (%T), want int64(8)", values["workers"], values["workers"])
	}
	if values["preload_app"] != true {
		t.Errorf("preload_app = %v, want true", values["preload_app"])
	}
	if v, ok := values["proc_name"]; !ok || v != nil {
		t.Errorf("proc_name = %v (present=%v), want present nil", v, ok)
	}
}

func TestJSONLoader_RejectsNonObject(t *testing.T) {
	if _, err := NewJSONLoader("").LoadFromReader(strings.NewReader(`[1, 2]`)); err == nil {
		t.Error("array accepted, want error")
	}
	if _, err := NewJSONLoader("").LoadFromReader(strings.NewReader(`{broken`)); err == nil {
		t.Error("invalid JSON accepted, want error")
	}
}

func TestJSONLoader_MissingFileIsNotAnError(t *testing.T) {
	values, err := NewJSONLoader(filepath.Join(t.TempDir(), "absent.json")).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if values != nil {
		t.Errorf("values = %v, want nil", values)
	}
}
