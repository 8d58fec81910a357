package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlens/backend/internal/artifact"
	"github.com/netlens/backend/internal/testutil"
)

// testLoader writes a fixed set of artifacts into a temp models directory:
// anomaly bounds [100,1000], centroids {100,500,1400}, and a protocol
// classifier predicting TCP for Length <= 800 and UDP above.
func testLoader(t *testing.T) *artifact.Loader {
	t.Helper()
	dir := t.TempDir()
	save := func(file string, kind artifact.Kind, model any) {
		require.NoError(t, artifact.Save(filepath.Join(dir, file), kind, model))
	}
	save("anomaly_model.bin", artifact.KindAnomaly,
		&artifact.AnomalyModel{Lower: 100, Upper: 1000, Contamination: 0.1})
	save("clustering_model.bin", artifact.KindClustering,
		&artifact.ClusterModel{Centroids: []float64{100, 500, 1400}})
	save("protocol_model.bin", artifact.KindProtocol,
		&artifact.ProtocolModel{
			Cuts:    []float64{800},
			Classes: []int{0, 1},
			Codec:   artifact.LabelCodec{Labels: []string{"TCP", "UDP"}},
		})
	save("hotspot_model.bin", artifact.KindHotspot,
		&artifact.FrequencyModel{Field: "Destination", Counts: map[string]int{"10.0.0.1": 3}})
	return artifact.LoaderFromDir(dir)
}

func newTestEngine(t *testing.T, src LogSource) *Engine {
	t.Helper()
	return NewEngine(src, testLoader(t), nil)
}

func TestEngineStoreUnreachable(t *testing.T) {
	src := testutil.NewStaticStore()
	src.FailWith(errors.New("connection refused"))
	engine := newTestEngine(t, src)

	_, err := engine.Anomalies(context.Background(), 1, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading the logs collection")

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "store failures are not caller errors")
}

func TestEngineMissingArtifact(t *testing.T) {
	src := testutil.NewStaticStore(testutil.Record(1, "TCP", 500))
	// Empty models directory: every artifact load must fail fast.
	engine := NewEngine(src, artifact.LoaderFromDir(t.TempDir()), nil)

	_, err := engine.Anomalies(context.Background(), 1, 50)
	assert.Error(t, err)
	_, err = engine.ClusterOverview(context.Background())
	assert.Error(t, err)
	_, err = engine.Protocols(context.Background(), 1, 50)
	assert.Error(t, err)
}
