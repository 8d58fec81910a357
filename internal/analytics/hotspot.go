package analytics

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/models"
)

const topN = 5

type valueCount struct {
	value string
	count int
}

// topCounts ranks the distinct values of a categorical column by
// descending occurrence count, tie-broken by first appearance in the
// snapshot, and keeps the top five.
func topCounts(values []string) []valueCount {
	counts := make(map[string]int)
	ordered := make([]string, 0)
	for _, v := range values {
		if counts[v] == 0 {
			ordered = append(ordered, v)
		}
		counts[v]++
	}

	ranked := make([]valueCount, 0, len(ordered))
	for _, v := range ordered {
		ranked = append(ranked, valueCount{value: v, count: counts[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Hotspots computes live frequency tables for destinations, sources, and
// protocols plus global Length statistics. No model artifact is consulted;
// the collection itself is the source of truth. A schema-valid but empty
// collection yields zeroed statistics.
func (e *Engine) Hotspots(ctx context.Context) (*models.HotspotReport, error) {
	frame, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := frame.Require(models.FieldDestination, models.FieldSource,
		models.FieldLength, models.FieldProtocol); err != nil {
		return nil, err
	}

	destinations, err := frame.Strings(models.FieldDestination)
	if err != nil {
		return nil, err
	}
	sources, err := frame.Strings(models.FieldSource)
	if err != nil {
		return nil, err
	}
	protocols, err := frame.Strings(models.FieldProtocol)
	if err != nil {
		return nil, err
	}
	lengths, err := frame.Floats(models.FieldLength)
	if err != nil {
		return nil, err
	}

	total := frame.Len()
	report := &models.HotspotReport{
		TotalLogs:       total,
		TopDestinations: make([]models.DestinationCount, 0, topN),
		TopSources:      make([]models.SourceCount, 0, topN),
		TopProtocols:    make([]models.ProtocolCount, 0, topN),
		LengthStats:     lengthStats(lengths),
	}
	for _, vc := range topCounts(destinations) {
		report.TopDestinations = append(report.TopDestinations, models.DestinationCount{
			Destination: vc.value, Count: vc.count, Percentage: percentage(vc.count, total),
		})
	}
	for _, vc := range topCounts(sources) {
		report.TopSources = append(report.TopSources, models.SourceCount{
			Source: vc.value, Count: vc.count, Percentage: percentage(vc.count, total),
		})
	}
	for _, vc := range topCounts(protocols) {
		report.TopProtocols = append(report.TopProtocols, models.ProtocolCount{
			Protocol: vc.value, Count: vc.count, Percentage: percentage(vc.count, total),
		})
	}

	e.logger.Debug("hotspot view computed", zap.Int("total_logs", total))
	return report, nil
}
