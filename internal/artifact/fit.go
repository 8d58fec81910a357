package artifact

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoTrainingData is returned when fitting is attempted on an empty set.
var ErrNoTrainingData = errors.New("no training data")

// quantile returns the linearly interpolated q-quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FitAnomaly fits outlier bounds so that roughly the given contamination
// fraction of the training values falls outside them, split evenly between
// the two tails.
func FitAnomaly(lengths []float64, contamination float64) (*AnomalyModel, error) {
	if len(lengths) == 0 {
		return nil, ErrNoTrainingData
	}
	if contamination <= 0 || contamination >= 1 {
		return nil, fmt.Errorf("contamination %v outside (0,1)", contamination)
	}
	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)
	return &AnomalyModel{
		Lower:         quantile(sorted, contamination/2),
		Upper:         quantile(sorted, 1-contamination/2),
		Contamination: contamination,
	}, nil
}

// FitClusters runs one-dimensional k-means with deterministic quantile
// seeding. Centroids come back sorted ascending so assignment labels are
// reproducible across fits of the same data.
func FitClusters(lengths []float64, k int) (*ClusterModel, error) {
	if len(lengths) == 0 {
		return nil, ErrNoTrainingData
	}
	if k < 1 {
		return nil, fmt.Errorf("cluster count %d must be at least 1", k)
	}
	if k > len(lengths) {
		k = len(lengths)
	}

	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)

	// Seed centroids at evenly spaced quantiles of the training data.
	centroids := make([]float64, k)
	for i := range centroids {
		centroids[i] = quantile(sorted, (float64(i)+0.5)/float64(k))
	}

	model := &ClusterModel{Centroids: centroids}
	sums := make([]float64, k)
	counts := make([]int, k)
	for iter := 0; iter < 100; iter++ {
		for i := range sums {
			sums[i], counts[i] = 0, 0
		}
		for i, label := range model.Predict(sorted) {
			sums[label] += sorted[i]
			counts[label]++
		}

		moved := false
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			next := sums[i] / float64(counts[i])
			if next != centroids[i] {
				centroids[i] = next
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	sort.Float64s(centroids)
	return model, nil
}

// FitProtocol fits the interval classifier and its label codec. The codec
// enumerates the distinct protocols in sorted order; decision cuts sit at
// the midpoints between the per-protocol mean lengths.
func FitProtocol(lengths []float64, protocols []string) (*ProtocolModel, error) {
	if len(lengths) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(lengths) != len(protocols) {
		return nil, fmt.Errorf("feature/label length mismatch: %d vs %d", len(lengths), len(protocols))
	}

	labels := make([]string, 0)
	seen := make(map[string]bool)
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, proto := range protocols {
		if !seen[proto] {
			seen[proto] = true
			labels = append(labels, proto)
		}
		sums[proto] += lengths[i]
		counts[proto]++
	}
	sort.Strings(labels)

	encode := make(map[string]int, len(labels))
	for i, l := range labels {
		encode[l] = i
	}

	// Order protocols along the length axis by their mean.
	byMean := append([]string(nil), labels...)
	sort.SliceStable(byMean, func(i, j int) bool {
		return sums[byMean[i]]/float64(counts[byMean[i]]) < sums[byMean[j]]/float64(counts[byMean[j]])
	})

	cuts := make([]float64, 0, len(byMean)-1)
	classes := make([]int, 0, len(byMean))
	for i, proto := range byMean {
		classes = append(classes, encode[proto])
		if i+1 < len(byMean) {
			mean := sums[proto] / float64(counts[proto])
			nextMean := sums[byMean[i+1]] / float64(counts[byMean[i+1]])
			cuts = append(cuts, (mean+nextMean)/2)
		}
	}

	return &ProtocolModel{
		Cuts:    cuts,
		Classes: classes,
		Codec:   LabelCodec{Labels: labels},
	}, nil
}

// FitFrequency counts value occurrences for one categorical field.
func FitFrequency(field string, values []string) (*FrequencyModel, error) {
	if len(values) == 0 {
		return nil, ErrNoTrainingData
	}
	counts := make(map[string]int, 64)
	for _, v := range values {
		counts[v]++
	}
	return &FrequencyModel{Field: field, Counts: counts}, nil
}
