// The importer bulk-loads a Wireshark CSV export into the log store.
// Batches are written concurrently; the store serializes its appender
// internally.
package main

import (
	"context"
	"flag"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/config"
	"github.com/netlens/backend/internal/dataset"
	"github.com/netlens/backend/internal/models"
	"github.com/netlens/backend/internal/store"
)

func main() {
	csvPath := flag.String("csv", "dataset.csv", "path to the CSV capture export")
	configPath := flag.String("config", config.DefaultFileName, "path to the config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("failed to create directories", zap.Error(err))
	}

	records, err := dataset.ReadCSV(*csvPath)
	if err != nil {
		logger.Fatal("failed to read dataset", zap.String("csv", *csvPath), zap.Error(err))
	}
	logger.Info("dataset loaded", zap.String("csv", *csvPath), zap.Int("records", len(records)))

	logStore, err := store.Open(cfg.Storage.DatabaseFile, logger)
	if err != nil {
		logger.Fatal("failed to open log store", zap.Error(err))
	}
	defer logStore.Close()

	batchSize := cfg.Advanced.ImportBatchSize
	if batchSize < 1 {
		batchSize = 5000
	}
	workers := cfg.Advanced.ImportWorkers
	if workers < 1 {
		workers = 1
	}

	batches := make(chan []models.LogRecord, workers)
	var (
		wg     sync.WaitGroup
		failMu sync.Mutex
		failed error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				if err := logStore.InsertBatch(context.Background(), batch); err != nil {
					failMu.Lock()
					failed = err
					failMu.Unlock()
					logger.Error("batch insert failed", zap.Int("size", len(batch)), zap.Error(err))
				}
			}
		}()
	}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batches <- records[start:end]
	}
	close(batches)
	wg.Wait()

	if failed != nil {
		logger.Fatal("import finished with errors", zap.Error(failed))
	}

	total, err := logStore.Count(context.Background())
	if err != nil {
		logger.Fatal("failed to count records", zap.Error(err))
	}
	logger.Info("import complete",
		zap.Int("imported", len(records)),
		zap.Int("total_in_store", total))
}
