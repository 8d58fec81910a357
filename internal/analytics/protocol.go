package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/models"
)

// Protocols applies the fitted protocol classifier to every record,
// compares the decoded prediction against the stored protocol
// (case-sensitive exact equality), and returns one page of the full
// augmented record set. Each row carries the original fields plus
// Predicted_Protocol and the Mismatch flag. On an empty collection the
// match percentage is defined as 100.0 to keep the metric total.
func (e *Engine) Protocols(ctx context.Context, page, limit int) (*models.ProtocolReport, error) {
	if err := ValidatePage(page, limit); err != nil {
		return nil, err
	}

	model, err := e.loader.Protocol()
	if err != nil {
		return nil, err
	}

	frame, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := frame.Require(models.FieldLength, models.FieldProtocol); err != nil {
		return nil, err
	}

	lengths, err := frame.Floats(models.FieldLength)
	if err != nil {
		return nil, err
	}
	stored, err := frame.Strings(models.FieldProtocol)
	if err != nil {
		return nil, err
	}

	predicted, err := model.PredictNames(lengths)
	if err != nil {
		return nil, err
	}

	mismatchCount := 0
	augmented := make([]map[string]any, frame.Len())
	for i, doc := range frame.Docs() {
		mismatch := stored[i] != predicted[i]
		if mismatch {
			mismatchCount++
		}
		row := SerializeDocument(doc)
		row["Predicted_Protocol"] = predicted[i]
		row["Mismatch"] = mismatch
		augmented[i] = row
	}

	total := frame.Len()
	matchPercentage := 100.0
	if total > 0 {
		matchPercentage = float64(total-mismatchCount) / float64(total) * 100
	}

	report := &models.ProtocolReport{
		TotalLogs:       total,
		MatchPercentage: matchPercentage,
		MismatchCount:   mismatchCount,
		Logs:            Paginate(augmented, page, limit),
		Page:            page,
		Limit:           limit,
	}
	e.logger.Debug("protocol view computed",
		zap.Int("total_logs", total),
		zap.Int("mismatch_count", mismatchCount),
		zap.Float64("match_percentage", matchPercentage))
	return report, nil
}
