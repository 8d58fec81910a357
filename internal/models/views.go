package models

// The structs below are the wire contracts of the analytics views. Field
// names are part of the API and must not change.

// AnomalyReport summarizes anomaly detection over the full collection and
// carries one page of the anomalous records.
type AnomalyReport struct {
	TotalLogs    int              `json:"total_logs"`
	AnomalyCount int              `json:"anomaly_count"`
	Harshness    string           `json:"harshness"`
	Anomalies    []map[string]any `json:"anomalies"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
}

// ClusterSummary is one row of the cluster overview.
type ClusterSummary struct {
	Cluster   int     `json:"cluster"`
	Size      int     `json:"size"`
	AvgLength float64 `json:"avg_length"`
	MinLength int64   `json:"min_length"`
	MaxLength int64   `json:"max_length"`
}

// ClusterOverview summarizes every observed cluster.
type ClusterOverview struct {
	TotalLogs     int              `json:"total_logs"`
	TotalClusters int              `json:"total_clusters"`
	Clusters      []ClusterSummary `json:"clusters"`
}

// LengthStats holds aggregate statistics over the Length field.
type LengthStats struct {
	AvgLength float64 `json:"avg_length"`
	MinLength int64   `json:"min_length"`
	MaxLength int64   `json:"max_length"`
}

// ClusterDetail is the paginated view of a single cluster. TotalLogs counts
// the records assigned to the requested cluster, not the whole collection.
type ClusterDetail struct {
	TotalLogs int              `json:"total_logs"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
	Stats     LengthStats      `json:"stats"`
	Logs      []map[string]any `json:"logs"`
}

// DestinationCount is a ranked destination hotspot entry.
type DestinationCount struct {
	Destination string  `json:"Destination"`
	Count       int     `json:"Count"`
	Percentage  float64 `json:"Percentage"`
}

// SourceCount is a ranked source hotspot entry.
type SourceCount struct {
	Source     string  `json:"Source"`
	Count      int     `json:"Count"`
	Percentage float64 `json:"Percentage"`
}

// ProtocolCount is a ranked protocol hotspot entry.
type ProtocolCount struct {
	Protocol   string  `json:"Protocol"`
	Count      int     `json:"Count"`
	Percentage float64 `json:"Percentage"`
}

// HotspotReport holds the top traffic endpoints and protocols plus global
// length statistics.
type HotspotReport struct {
	TotalLogs       int                `json:"total_logs"`
	TopDestinations []DestinationCount `json:"top_destinations"`
	TopSources      []SourceCount      `json:"top_sources"`
	TopProtocols    []ProtocolCount    `json:"top_protocols"`
	LengthStats     LengthStats        `json:"length_stats"`
}

// ProtocolReport compares stored protocols against the classifier's
// predictions. Logs carries one page of the full augmented record set.
type ProtocolReport struct {
	TotalLogs       int              `json:"total_logs"`
	MatchPercentage float64          `json:"match_percentage"`
	MismatchCount   int              `json:"mismatch_count"`
	Logs            []map[string]any `json:"logs"`
	Page            int              `json:"page"`
	Limit           int              `json:"limit"`
}
