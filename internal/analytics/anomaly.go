package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/artifact"
	"github.com/netlens/backend/internal/models"
)

// Harshness classifies the proportion of anomalous records. An empty
// collection has no proportion and reports "No Data".
func Harshness(anomalyCount, totalLogs int) string {
	if totalLogs == 0 {
		return "No Data"
	}
	proportion := float64(anomalyCount) / float64(totalLogs)
	switch {
	case proportion > 0.5:
		return "Critical"
	case proportion > 0.2:
		return "High"
	case proportion > 0.1:
		return "Moderate"
	default:
		return "Low"
	}
}

// Anomalies applies the fitted anomaly model to the current collection and
// returns one page of the anomalous records together with full-snapshot
// metrics. Summary counts always cover the whole snapshot regardless of
// the requested page.
func (e *Engine) Anomalies(ctx context.Context, page, limit int) (*models.AnomalyReport, error) {
	if err := ValidatePage(page, limit); err != nil {
		return nil, err
	}

	model, err := e.loader.Anomaly()
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

	labels := model.Predict(lengths)
	anomalous := make([]models.Document, 0)
	for i, doc := range frame.Docs() {
		if labels[i] == artifact.LabelAnomalous {
			anomalous = append(anomalous, doc)
		}
	}

	rows := make([]map[string]any, 0, limit)
	for _, doc := range Paginate(anomalous, page, limit) {
		row := SerializeDocument(doc)
		row["anomaly"] = artifact.LabelAnomalous
		rows = append(rows, row)
	}

	report := &models.AnomalyReport{
		TotalLogs:    frame.Len(),
		AnomalyCount: len(anomalous),
		Harshness:    Harshness(len(anomalous), frame.Len()),
		Anomalies:    rows,
		Page:         page,
		Limit:        limit,
	}
	e.logger.Debug("anomaly view computed",
		zap.Int("total_logs", report.TotalLogs),
		zap.Int("anomaly_count", report.AnomalyCount),
		zap.String("harshness", report.Harshness))
	return report, nil
}
