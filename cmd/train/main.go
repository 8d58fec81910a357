// The trainer fits the four model artifacts from a CSV capture export and
// writes them, plus a manifest, into the models directory the server reads
// at startup.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/artifact"
	"github.com/netlens/backend/internal/dataset"
)

const contamination = 0.1

func main() {
	csvPath := flag.String("csv", "dataset.csv", "path to the CSV capture export")
	outDir := flag.String("out", "./data/models", "output directory for trained artifacts")
	clusters := flag.Int("k", 3, "number of clusters to fit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	records, err := dataset.ReadCSV(*csvPath)
	if err != nil {
		logger.Fatal("failed to read dataset", zap.String("csv", *csvPath), zap.Error(err))
	}

	lengths := make([]float64, len(records))
	protocols := make([]string, len(records))
	destinations := make([]string, len(records))
	for i, rec := range records {
		lengths[i] = float64(rec.Length)
		protocols[i] = rec.Protocol
		destinations[i] = rec.Destination
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Fatal("failed to create output directory", zap.Error(err))
	}

	anomaly, err := artifact.FitAnomaly(lengths, contamination)
	if err != nil {
		logger.Fatal("failed to fit anomaly model", zap.Error(err))
	}
	clustering, err := artifact.FitClusters(lengths, *clusters)
	if err != nil {
		logger.Fatal("failed to fit clustering model", zap.Error(err))
	}
	protocol, err := artifact.FitProtocol(lengths, protocols)
	if err != nil {
		logger.Fatal("failed to fit protocol model", zap.Error(err))
	}
	hotspot, err := artifact.FitFrequency("Destination", destinations)
	if err != nil {
		logger.Fatal("failed to fit hotspot model", zap.Error(err))
	}

	trainedAt := time.Now().UTC()
	manifest := &artifact.Manifest{Dataset: filepath.Base(*csvPath)}
	save := func(kind artifact.Kind, file string, model any) {
		if err := artifact.Save(filepath.Join(*outDir, file), kind, model); err != nil {
			logger.Fatal("failed to save artifact", zap.String("kind", string(kind)), zap.Error(err))
		}
		manifest.Artifacts = append(manifest.Artifacts, artifact.ManifestEntry{
			Kind:      string(kind),
			File:      file,
			TrainedAt: trainedAt,
		})
		logger.Info("artifact saved", zap.String("kind", string(kind)), zap.String("file", file))
	}

	save(artifact.KindAnomaly, "anomaly_model.bin", anomaly)
	save(artifact.KindClustering, "clustering_model.bin", clustering)
	save(artifact.KindProtocol, "protocol_model.bin", protocol)
	save(artifact.KindHotspot, "hotspot_model.bin", hotspot)

	if err := manifest.Save(*outDir); err != nil {
		logger.Fatal("failed to save manifest", zap.Error(err))
	}

	logger.Info("training complete",
		zap.Int("records", len(records)),
		zap.Int("clusters", clustering.K()),
		zap.Float64("anomaly_lower", anomaly.Lower),
		zap.Float64("anomaly_upper", anomaly.Upper),
		zap.String("out", *outDir))
}
