package ollama

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		model string
		name  string
		tag   string
	}{
		{"llama3", "llama3", "latest"},
		{"llama3:latest", "llama3", "latest"},
		{"llama3:8b", "llama3", "8b"},
		{"mistral:7b-instruct", "mistral", "7b-instruct"},
	}
	for _, tt := range tests {
		name, tag := splitName(tt.model)
		if name != tt.name || tag != tt.tag {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tt.model, name, tag, tt.name, tt.tag)
		}
	}
}

// fixtureStore lays out a minimal manifests/ + blobs/ tree.
func fixtureStore(t *testing.T, model, tag string, layers []Layer, blob string) Store {
	t.Helper()
	dir := t.TempDir()

	manifestDir := filepath.Join(dir, "manifests", DefaultRegistry, DefaultLibrary, model)
	if err := os.MkdirAll(manifestDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(Manifest{SchemaVersion: 2, Layers: layers})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(manifestDir, tag), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if blob != "" {
		blobDir := filepath.Join(dir, "blobs")
		if err := os.MkdirAll(blobDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(blobDir, blob), []byte("GGUF"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Store{Dir: dir}
}

func TestResolve(t *testing.T) {
	store := fixtureStore(t, "llama3", "latest", []Layer{
		{MediaType: "application/vnd.ollama.image.template", Digest: "sha256:aaa"},
		{MediaType: MediaTypeModel, Digest: "sha256:deadbeef", Size: 4},
	}, "sha256-deadbeef")

	path, err := store.Resolve("llama3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(store.Dir, "blobs", "sha256-deadbeef")
	if path != want {
		t.Errorf("Resolve = %q, want %q", path, want)
	}
}

func TestResolveTagged(t *testing.T) {
	store := fixtureStore(t, "mistral", "7b", []Layer{
		{MediaType: MediaTypeModel, Digest: "sha256:cafe"},
	}, "sha256-cafe")

	if _, err := store.Resolve("mistral:7b"); err != nil {
		t.Fatalf("Resolve tagged: %v", err)
	}
	if _, err := store.Resolve("mistral"); err == nil {
		t.Error("expected error for missing latest tag")
	}
}

func TestResolveMissingManifest(t *testing.T) {
	store := Store{Dir: t.TempDir()}
	if _, err := store.Resolve("nope"); err == nil {
		t.Error("expected error for absent manifest")
	}
}

func TestResolveNoModelLayer(t *testing.T) {
	store := fixtureStore(t, "empty", "latest", []Layer{
		{MediaType: "application/vnd.ollama.image.params", Digest: "sha256:bbb"},
	}, "")
	if _, err := store.Resolve("empty"); err == nil {
		t.Error("expected error when manifest has no model layer")
	}
}

func TestResolveMissingBlob(t *testing.T) {
	store := fixtureStore(t, "ghost", "latest", []Layer{
		{MediaType: MediaTypeModel, Digest: "sha256:gone"},
	}, "")
	if _, err := store.Resolve("ghost"); err == nil {
		t.Error("expected error when blob file is absent")
	}
}

func TestDefaultStoreEnvOverride(t *testing.T) {
	t.Setenv("OLLAMA_MODELS", "/srv/ollama/models")
	store, err := DefaultStore()
	if err != nil {
		t.Fatal(err)
	}
	if store.Dir != "/srv/ollama/models" {
		t.Errorf("Dir = %q, want env override", store.Dir)
	}
}
