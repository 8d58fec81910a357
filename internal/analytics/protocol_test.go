package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlens/backend/internal/models"
	"github.com/netlens/backend/internal/testutil"
)

// The fitted classifier predicts TCP for Length <= 800 and UDP above.
func TestProtocolsMismatchScenario(t *testing.T) {
	records := make([]models.LogRecord, 0, 10)
	for i := int64(1); i <= 8; i++ {
		records = append(records, testutil.Record(i, "TCP", 500))
	}
	// A UDP record the model agrees with, and one length outlier stored
	// as TCP but predicted UDP.
	records = append(records, testutil.Record(9, "UDP", 900))
	records = append(records, testutil.Record(10, "TCP", 950))

	engine := newTestEngine(t, testutil.NewStaticStore(records...))

	report, err := engine.Protocols(context.Background(), 1, 50)
	require.NoError(t, err)

	assert.Equal(t, 10, report.TotalLogs)
	assert.Equal(t, 1, report.MismatchCount)
	assert.Equal(t, 90.0, report.MatchPercentage)

	// match_percentage and the mismatch share always sum to 100.
	mismatchShare := float64(report.MismatchCount) / float64(report.TotalLogs) * 100
	assert.InDelta(t, 100.0, report.MatchPercentage+mismatchShare, 1e-9)

	// Every row is returned, not just the mismatches, each carrying the
	// prediction and flag alongside the original fields.
	require.Len(t, report.Logs, 10)
	for i, row := range report.Logs {
		assert.Equal(t, int64(i+1), row["No."])
		assert.Contains(t, row, "Predicted_Protocol")
		assert.Contains(t, row, "Mismatch")
	}
	assert.Equal(t, "TCP", report.Logs[0]["Predicted_Protocol"])
	assert.Equal(t, false, report.Logs[0]["Mismatch"])
	assert.Equal(t, "UDP", report.Logs[8]["Predicted_Protocol"])
	assert.Equal(t, false, report.Logs[8]["Mismatch"])
	assert.Equal(t, "UDP", report.Logs[9]["Predicted_Protocol"])
	assert.Equal(t, true, report.Logs[9]["Mismatch"])
}

func TestProtocolsPaginatesFullSet(t *testing.T) {
	records := make([]models.LogRecord, 0, 5)
	for i := int64(1); i <= 5; i++ {
		records = append(records, testutil.Record(i, "TCP", 500))
	}
	engine := newTestEngine(t, testutil.NewStaticStore(records...))

	page2, err := engine.Protocols(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page2.TotalLogs)
	require.Len(t, page2.Logs, 2)
	assert.Equal(t, int64(3), page2.Logs[0]["No."])
	assert.Equal(t, int64(4), page2.Logs[1]["No."])
}

func TestProtocolsEmptyCollection(t *testing.T) {
	engine := newTestEngine(t, testutil.NewStaticStore())

	report, err := engine.Protocols(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalLogs)
	assert.Equal(t, 0, report.MismatchCount)
	assert.Equal(t, 100.0, report.MatchPercentage)
	assert.Empty(t, report.Logs)
}

func TestProtocolsCaseSensitiveComparison(t *testing.T) {
	engine := newTestEngine(t, testutil.NewStaticStore(
		testutil.Record(1, "tcp", 500),
	))

	report, err := engine.Protocols(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MismatchCount)
}
