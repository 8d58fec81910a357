package artifact

import (
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// Magic number "NLM1" identifying a NetLens model artifact.
	envelopeMagic uint32 = 0x4E4C4D31
	// Current envelope version.
	envelopeVersion uint8 = 1
)

// ErrCorrupt marks an artifact file that exists but cannot be decoded.
var ErrCorrupt = errors.New("artifact file is corrupt or not a model artifact")

// envelope wraps every artifact on disk so loading can fail fast on the
// wrong file or the wrong model kind.
type envelope struct {
	Magic   uint32             `msgpack:"magic"`
	Version uint8              `msgpack:"version"`
	Kind    string             `msgpack:"kind"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// Save serializes a fitted model under the given kind.
func Save(path string, kind Kind, model any) error {
	payload, err := msgpack.Marshal(model)
	if err != nil {
		return fmt.Errorf("encoding %s model: %w", kind, err)
	}
	data, err := msgpack.Marshal(envelope{
		Magic:   envelopeMagic,
		Version: envelopeVersion,
		Kind:    string(kind),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("encoding %s artifact envelope: %w", kind, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s artifact: %w", kind, err)
	}
	return nil
}

// load reads an artifact file and decodes its payload into model,
// verifying the envelope matches the requested kind.
func load(path string, kind Kind, model any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading %s artifact: %w", kind, err)
	}

	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%s artifact %s: %w: %v", kind, path, ErrCorrupt, err)
	}
	if env.Magic != envelopeMagic {
		return fmt.Errorf("%s artifact %s: %w: bad magic", kind, path, ErrCorrupt)
	}
	if env.Version != envelopeVersion {
		return fmt.Errorf("%s artifact %s: unsupported version %d", kind, path, env.Version)
	}
	if env.Kind != string(kind) {
		return fmt.Errorf("artifact %s holds a %q model, want %q", path, env.Kind, kind)
	}
	if err := msgpack.Unmarshal(env.Payload, model); err != nil {
		return fmt.Errorf("%s artifact %s: %w: %v", kind, path, ErrCorrupt, err)
	}
	return nil
}

// Loader resolves artifact files under a models directory. Loading reads
// from disk on every call; loaded models are read-only and safe to share
// across concurrent requests.
type Loader struct {
	anomalyPath    string
	clusteringPath string
	protocolPath   string
	hotspotPath    string
}

// NewLoader builds a loader from explicit artifact file paths.
func NewLoader(anomalyPath, clusteringPath, protocolPath, hotspotPath string) *Loader {
	return &Loader{
		anomalyPath:    anomalyPath,
		clusteringPath: clusteringPath,
		protocolPath:   protocolPath,
		hotspotPath:    hotspotPath,
	}
}

// Anomaly loads the anomaly detection model.
func (l *Loader) Anomaly() (*AnomalyModel, error) {
	m := &AnomalyModel{}
	if err := load(l.anomalyPath, KindAnomaly, m); err != nil {
		return nil, err
	}
	if m.Lower > m.Upper {
		return nil, fmt.Errorf("anomaly artifact %s: %w: inverted bounds", l.anomalyPath, ErrCorrupt)
	}
	return m, nil
}

// Clustering loads the cluster assignment model.
func (l *Loader) Clustering() (*ClusterModel, error) {
	m := &ClusterModel{}
	if err := load(l.clusteringPath, KindClustering, m); err != nil {
		return nil, err
	}
	if len(m.Centroids) == 0 {
		return nil, fmt.Errorf("clustering artifact %s: %w: no centroids", l.clusteringPath, ErrCorrupt)
	}
	return m, nil
}

// Protocol loads the protocol classifier together with its label codec.
func (l *Loader) Protocol() (*ProtocolModel, error) {
	m := &ProtocolModel{}
	if err := load(l.protocolPath, KindProtocol, m); err != nil {
		return nil, err
	}
	if len(m.Classes) != len(m.Cuts)+1 || len(m.Codec.Labels) == 0 {
		return nil, fmt.Errorf("protocol artifact %s: %w: inconsistent classifier shape", l.protocolPath, ErrCorrupt)
	}
	return m, nil
}

// Hotspot loads the offline frequency table.
func (l *Loader) Hotspot() (*FrequencyModel, error) {
	m := &FrequencyModel{}
	if err := load(l.hotspotPath, KindHotspot, m); err != nil {
		return nil, err
	}
	return m, nil
}
