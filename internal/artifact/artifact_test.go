package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnomalyModelPredict(t *testing.T) {
	m := &AnomalyModel{Lower: 100, Upper: 1000}
	got := m.Predict([]float64{50, 100, 500, 1000, 1001})
	assert.Equal(t, []int{LabelAnomalous, LabelNormal, LabelNormal, LabelNormal, LabelAnomalous}, got)
}

func TestFitAnomalyBounds(t *testing.T) {
	lengths := make([]float64, 100)
	for i := range lengths {
		lengths[i] = float64(i + 1)
	}

	m, err := FitAnomaly(lengths, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, m.Contamination)
	assert.Less(t, m.Lower, m.Upper)

	// Roughly the contamination fraction of the training data lands
	// outside the fitted bounds.
	outside := 0
	for _, label := range m.Predict(lengths) {
		if label == LabelAnomalous {
			outside++
		}
	}
	assert.InDelta(t, 10, outside, 2)
}

func TestFitAnomalyRejectsBadInput(t *testing.T) {
	_, err := FitAnomaly(nil, 0.1)
	assert.ErrorIs(t, err, ErrNoTrainingData)
	_, err = FitAnomaly([]float64{1}, 0)
	assert.Error(t, err)
	_, err = FitAnomaly([]float64{1}, 1)
	assert.Error(t, err)
}

func TestClusterModelPredict(t *testing.T) {
	m := &ClusterModel{Centroids: []float64{100, 500, 1400}}
	got := m.Predict([]float64{0, 299, 300, 950, 2000})
	// 300 is equidistant from 100 and 500; ties resolve to the lower index.
	assert.Equal(t, []int{0, 0, 0, 1, 2}, got)
}

func TestFitClusters(t *testing.T) {
	lengths := []float64{10, 11, 12, 500, 510, 520, 1400, 1410}

	m, err := FitClusters(lengths, 3)
	require.NoError(t, err)
	require.Equal(t, 3, m.K())

	// Centroids come back sorted and separate the three groups.
	assert.Less(t, m.Centroids[0], m.Centroids[1])
	assert.Less(t, m.Centroids[1], m.Centroids[2])
	labels := m.Predict(lengths)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2}, labels)
}

func TestFitClustersClampsK(t *testing.T) {
	m, err := FitClusters([]float64{5, 6}, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.K(), 2)
}

func TestFitProtocolAndPredict(t *testing.T) {
	lengths := []float64{60, 70, 80, 500, 520, 1400}
	protocols := []string{"DNS", "DNS", "DNS", "TCP", "TCP", "UDP"}

	m, err := FitProtocol(lengths, protocols)
	require.NoError(t, err)

	// Codec labels are the sorted distinct protocols.
	assert.Equal(t, []string{"DNS", "TCP", "UDP"}, m.Codec.Labels)
	require.Len(t, m.Classes, len(m.Cuts)+1)

	names, err := m.PredictNames([]float64{65, 510, 1500})
	require.NoError(t, err)
	assert.Equal(t, []string{"DNS", "TCP", "UDP"}, names)

	// The training rows themselves classify correctly.
	names, err = m.PredictNames(lengths)
	require.NoError(t, err)
	assert.Equal(t, protocols, names)
}

func TestFitProtocolLengthMismatch(t *testing.T) {
	_, err := FitProtocol([]float64{1, 2}, []string{"TCP"})
	assert.Error(t, err)
}

func TestLabelCodecDecodeOutOfRange(t *testing.T) {
	c := &LabelCodec{Labels: []string{"TCP"}}
	_, err := c.Decode([]int{1})
	assert.Error(t, err)
	_, err = c.Decode([]int{-1})
	assert.Error(t, err)
}

func TestFitFrequency(t *testing.T) {
	m, err := FitFrequency("Destination", []string{"A", "A", "B"})
	require.NoError(t, err)
	assert.Equal(t, "Destination", m.Field)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, m.Counts)
}
