// Package ollama resolves local Ollama model names to their GGUF blob
// paths, so a split job can name a model instead of a file.
package ollama

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultTag      = "latest"
	DefaultRegistry = "registry.ollama.ai"
	DefaultLibrary  = "library"
	MediaTypeModel  = "application/vnd.ollama.image.model"
)

type Manifest struct {
	SchemaVersion int     `json:"schemaVersion"`
	Layers        []Layer `json:"layers"`
}

type Layer struct {
	MediaType string `json:"mediaType"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
}

// Store is a local Ollama model directory (manifests/ + blobs/).
type Store struct {
	Dir string
}

// DefaultStore locates the model directory: OLLAMA_MODELS when set,
// otherwise ~/.ollama/models.
func DefaultStore() (Store, error) {
	if env := os.Getenv("OLLAMA_MODELS"); env != "" {
		return Store{Dir: env}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: filepath.Join(home, ".ollama", "models")}, nil
}

// splitName breaks "llama3:8b" into name and tag; a bare "llama3" gets
// the latest tag.
func splitName(model string) (name, tag string) {
	if i := strings.IndexByte(model, ':'); i >= 0 {
		return model[:i], model[i+1:]
	}
	return model, DefaultTag
}

// Resolve maps a model name ("llama3", "llama3:8b") to the GGUF blob path
// behind its manifest. Only the default registry/library layout is
// supported; fully qualified image names are not.
func (s Store) Resolve(model string) (string, error) {
	name, tag := splitName(model)

	manifestPath := filepath.Join(s.Dir, "manifests", DefaultRegistry, DefaultLibrary, name, tag)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("model manifest not found at %s: %w", manifestPath, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("invalid manifest %s: %w", manifestPath, err)
	}

	var digest string
	for _, l := range m.Layers {
		if l.MediaType == MediaTypeModel {
			digest = l.Digest
			break
		}
	}
	if digest == "" {
		return "", fmt.Errorf("no model layer in manifest for %s", model)
	}

	// Digest "sha256:<hash>" maps to blobs/sha256-<hash>.
	blobPath := filepath.Join(s.Dir, "blobs", strings.Replace(digest, ":", "-", 1))
	if _, err := os.Stat(blobPath); err != nil {
		return "", fmt.Errorf("model blob not found at %s: %w", blobPath, err)
	}
	return blobPath, nil
}
