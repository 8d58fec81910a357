// Package artifact loads and applies pre-fitted statistical models.
//
// Artifacts are produced offline (see cmd/train), serialized as msgpack
// blobs with a small magic+version envelope, and are read-only at serve
// time. Every model consumes a single numeric feature vector (the Length
// column) aligned with snapshot row order.
package artifact

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies the model family stored in an artifact file.
type Kind string

const (
	KindAnomaly    Kind = "anomaly"
	KindClustering Kind = "clustering"
	KindProtocol   Kind = "protocol"
	KindHotspot    Kind = "hotspot"
)

// Labels emitted by AnomalyModel.Predict. The -1/+1 convention is fixed:
// -1 marks an anomalous record, +1 a normal one.
const (
	LabelAnomalous = -1
	LabelNormal    = 1
)

// AnomalyModel flags records whose Length falls outside the bounds fitted
// from the training distribution.
type AnomalyModel struct {
	Lower         float64 `msgpack:"lower"`
	Upper         float64 `msgpack:"upper"`
	Contamination float64 `msgpack:"contamination"`
}

// Predict returns LabelAnomalous or LabelNormal per input value, aligned
// with the input order.
func (m *AnomalyModel) Predict(xs []float64) []int {
	labels := make([]int, len(xs))
	for i, x := range xs {
		if x < m.Lower || x > m.Upper {
			labels[i] = LabelAnomalous
		} else {
			labels[i] = LabelNormal
		}
	}
	return labels
}

// ClusterModel assigns each value to its nearest centroid. Centroids are
// stored in ascending order so cluster labels are stable across loads.
type ClusterModel struct {
	Centroids []float64 `msgpack:"centroids"`
}

// K returns the number of fitted clusters.
func (m *ClusterModel) K() int {
	return len(m.Centroids)
}

// Predict returns the 0-based index of the nearest centroid for each value.
// Ties resolve to the lower index.
func (m *ClusterModel) Predict(xs []float64) []int {
	labels := make([]int, len(xs))
	for i, x := range xs {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range m.Centroids {
			if d := math.Abs(x - centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
	}
	return labels
}

// LabelCodec maps encoded class indices back to protocol names.
type LabelCodec struct {
	Labels []string `msgpack:"labels"`
}

// Decode translates encoded class indices into protocol names.
func (c *LabelCodec) Decode(classes []int) ([]string, error) {
	out := make([]string, len(classes))
	for i, cls := range classes {
		if cls < 0 || cls >= len(c.Labels) {
			return nil, fmt.Errorf("encoded label %d outside codec range [0,%d)", cls, len(c.Labels))
		}
		out[i] = c.Labels[cls]
	}
	return out, nil
}

// ProtocolModel is an interval classifier over Length: Cuts partitions the
// value axis into len(Cuts)+1 buckets and Classes holds the encoded label
// of each bucket. It is paired with the LabelCodec that decodes predictions
// back to protocol names.
type ProtocolModel struct {
	Cuts    []float64  `msgpack:"cuts"`
	Classes []int      `msgpack:"classes"`
	Codec   LabelCodec `msgpack:"codec"`
}

// Predict returns the encoded class per input value.
func (m *ProtocolModel) Predict(xs []float64) []int {
	classes := make([]int, len(xs))
	for i, x := range xs {
		// Cuts are sorted, so the bucket is the insertion point.
		bucket := sort.SearchFloat64s(m.Cuts, x)
		classes[i] = m.Classes[bucket]
	}
	return classes
}

// PredictNames predicts and decodes in one step.
func (m *ProtocolModel) PredictNames(xs []float64) ([]string, error) {
	return m.Codec.Decode(m.Predict(xs))
}

// FrequencyModel is the offline hotspot artifact: occurrence counts of one
// categorical field at training time. The serving hotspot view recomputes
// frequencies from the live collection instead of consulting this table;
// the artifact exists for training parity and offline inspection.
type FrequencyModel struct {
	Field  string         `msgpack:"field"`
	Counts map[string]int `msgpack:"counts"`
}
