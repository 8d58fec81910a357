package analytics

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/models"
)

func lengthStats(lengths []float64) models.LengthStats {
	if len(lengths) == 0 {
		return models.LengthStats{}
	}
	sum := 0.0
	min, max := lengths[0], lengths[0]
	for _, x := range lengths {
		sum += x
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return models.LengthStats{
		AvgLength: sum / float64(len(lengths)),
		MinLength: int64(min),
		MaxLength: int64(max),
	}
}

// ClusterOverview assigns every record to its fitted cluster and
// summarizes each observed cluster: size and Length statistics, sorted by
// ascending cluster label. TotalClusters counts the labels that actually
// received records, which can be fewer than the model's configured cluster
// count.
func (e *Engine) ClusterOverview(ctx context.Context) (*models.ClusterOverview, error) {
	model, err := e.loader.Clustering()
	if err != nil {
		return nil, err
	}

	frame, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	lengths, err := frame.Floats(models.FieldLength)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]float64)
	for i, label := range model.Predict(lengths) {
		grouped[label] = append(grouped[label], lengths[i])
	}

	observed := make([]int, 0, len(grouped))
	for label := range grouped {
		observed = append(observed, label)
	}
	sort.Ints(observed)

	clusters := make([]models.ClusterSummary, 0, len(observed))
	for _, label := range observed {
		stats := lengthStats(grouped[label])
		clusters = append(clusters, models.ClusterSummary{
			Cluster:   label,
			Size:      len(grouped[label]),
			AvgLength: stats.AvgLength,
			MinLength: stats.MinLength,
			MaxLength: stats.MaxLength,
		})
	}

	overview := &models.ClusterOverview{
		TotalLogs:     frame.Len(),
		TotalClusters: len(clusters),
		Clusters:      clusters,
	}
	e.logger.Debug("cluster overview computed",
		zap.Int("total_logs", overview.TotalLogs),
		zap.Int("total_clusters", overview.TotalClusters))
	return overview, nil
}

// ClusterDetail filters the collection to the records assigned to one
// cluster and returns a page of them plus Length statistics over the whole
// filtered subset. An unknown cluster id yields a valid empty result with
// zeroed statistics.
func (e *Engine) ClusterDetail(ctx context.Context, clusterID, page, limit int) (*models.ClusterDetail, error) {
	if err := ValidatePage(page, limit); err != nil {
		return nil, err
	}

	model, err := e.loader.Clustering()
	if err != nil {
		return nil, err
	}

	frame, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	lengths, err := frame.Floats(models.FieldLength)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Document, 0)
	matchedLengths := make([]float64, 0)
	for i, label := range model.Predict(lengths) {
		if label == clusterID {
			matched = append(matched, frame.Docs()[i])
			matchedLengths = append(matchedLengths, lengths[i])
		}
	}

	rows := make([]map[string]any, 0, limit)
	for _, doc := range Paginate(matched, page, limit) {
		row := SerializeDocument(doc)
		row["cluster"] = clusterID
		rows = append(rows, row)
	}

	detail := &models.ClusterDetail{
		TotalLogs: len(matched),
		Page:      page,
		Limit:     limit,
		Stats:     lengthStats(matchedLengths),
		Logs:      rows,
	}
	e.logger.Debug("cluster detail computed",
		zap.Int("cluster", clusterID),
		zap.Int("matched", detail.TotalLogs))
	return detail, nil
}
