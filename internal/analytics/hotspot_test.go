package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlens/backend/internal/models"
	"github.com/netlens/backend/internal/testutil"
)

func trafficRecord(no int64, src, dst, proto string, length int64) models.LogRecord {
	return models.LogRecord{
		No:          no,
		Time:        "0.000000",
		Source:      src,
		Destination: dst,
		Protocol:    proto,
		Length:      length,
		Info:        "test frame",
	}
}

func TestHotspotsRanking(t *testing.T) {
	// Destinations [A,A,B,C]: B outranks C only by first occurrence.
	src := testutil.NewStaticStore(
		trafficRecord(1, "s1", "A", "TCP", 100),
		trafficRecord(2, "s1", "A", "TCP", 200),
		trafficRecord(3, "s2", "B", "UDP", 300),
		trafficRecord(4, "s2", "C", "TCP", 400),
	)
	engine := newTestEngine(t, src)

	report, err := engine.Hotspots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalLogs)
	require.Len(t, report.TopDestinations, 3)
	assert.Equal(t, models.DestinationCount{Destination: "A", Count: 2, Percentage: 50.0}, report.TopDestinations[0])
	assert.Equal(t, models.DestinationCount{Destination: "B", Count: 1, Percentage: 25.0}, report.TopDestinations[1])
	assert.Equal(t, models.DestinationCount{Destination: "C", Count: 1, Percentage: 25.0}, report.TopDestinations[2])

	require.Len(t, report.TopSources, 2)
	assert.Equal(t, "s1", report.TopSources[0].Source)
	assert.Equal(t, 2, report.TopSources[0].Count)

	require.Len(t, report.TopProtocols, 2)
	assert.Equal(t, "TCP", report.TopProtocols[0].Protocol)
	assert.Equal(t, 3, report.TopProtocols[0].Count)
	assert.Equal(t, 75.0, report.TopProtocols[0].Percentage)

	assert.Equal(t, 250.0, report.LengthStats.AvgLength)
	assert.Equal(t, int64(100), report.LengthStats.MinLength)
	assert.Equal(t, int64(400), report.LengthStats.MaxLength)
}

func TestHotspotsTopFiveCap(t *testing.T) {
	store := testutil.NewStaticStore()
	for i := 0; i < 8; i++ {
		store.InsertBatch(context.Background(), []models.LogRecord{
			trafficRecord(int64(i), "s", fmt.Sprintf("dst-%d", i), "TCP", 100),
		})
	}
	engine := newTestEngine(t, store)

	report, err := engine.Hotspots(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.TopDestinations, 5)
	// All counts tie at 1, so ranking follows first occurrence.
	for i, entry := range report.TopDestinations {
		assert.Equal(t, fmt.Sprintf("dst-%d", i), entry.Destination)
	}
}

func TestHotspotsEmptyCollection(t *testing.T) {
	engine := newTestEngine(t, testutil.NewStaticStore())

	report, err := engine.Hotspots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalLogs)
	assert.Empty(t, report.TopDestinations)
	assert.Empty(t, report.TopSources)
	assert.Empty(t, report.TopProtocols)
	assert.Equal(t, models.LengthStats{}, report.LengthStats)
}

func TestHotspotsMissingField(t *testing.T) {
	store := testutil.NewStaticStore()
	store.AddDocument(models.Document{
		ID:     models.NewRecordID(),
		Fields: map[string]any{"Source": "s1", "Length": int64(100), "Protocol": "TCP"},
	})
	engine := newTestEngine(t, store)

	_, err := engine.Hotspots(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Destination", verr.Field)
}
