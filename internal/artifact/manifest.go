package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the well-known manifest name inside a models directory.
const ManifestFile = "manifest.yaml"

// ManifestEntry describes one trained artifact.
type ManifestEntry struct {
	Kind      string    `yaml:"kind"`
	File      string    `yaml:"file"`
	TrainedAt time.Time `yaml:"trained_at"`
}

// Manifest records which artifact files a models directory holds and where
// they were fitted from. cmd/train writes it; the server reads it at
// startup to resolve artifact paths.
type Manifest struct {
	Dataset   string          `yaml:"dataset"`
	Artifacts []ManifestEntry `yaml:"artifacts"`
}

// Path returns the artifact file path for the given kind, resolved
// relative to dir, or an empty string if the manifest has no such entry.
func (m *Manifest) Path(dir string, kind Kind) string {
	for _, e := range m.Artifacts {
		if e.Kind == string(kind) {
			return filepath.Join(dir, e.File)
		}
	}
	return ""
}

// LoadManifest reads manifest.yaml from a models directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("loading model manifest: %w", err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing model manifest: %w", err)
	}
	return m, nil
}

// Save writes the manifest into a models directory.
func (m *Manifest) Save(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding model manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("writing model manifest: %w", err)
	}
	return nil
}

// LoaderFromDir builds a Loader from a models directory, preferring the
// manifest when present and falling back to conventional file names.
func LoaderFromDir(dir string) *Loader {
	paths := map[Kind]string{
		KindAnomaly:    filepath.Join(dir, "anomaly_model.bin"),
		KindClustering: filepath.Join(dir, "clustering_model.bin"),
		KindProtocol:   filepath.Join(dir, "protocol_model.bin"),
		KindHotspot:    filepath.Join(dir, "hotspot_model.bin"),
	}
	if m, err := LoadManifest(dir); err == nil {
		for kind := range paths {
			if p := m.Path(dir, kind); p != "" {
				paths[kind] = p
			}
		}
	}
	return NewLoader(paths[KindAnomaly], paths[KindClustering], paths[KindProtocol], paths[KindHotspot])
}
