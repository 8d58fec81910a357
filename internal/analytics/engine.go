package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/netlens/backend/internal/artifact"
	"github.com/netlens/backend/internal/models"
)

// LogSource is the read-side store contract the engine consumes: one full
// ordered scan of the current log collection. No filter pushdown, no
// server-side pagination.
type LogSource interface {
	FindAll(ctx context.Context) ([]models.Document, error)
}

// Engine composes the artifact loader and the log source into the four
// analytical views. It holds no mutable state: each request materializes
// its own snapshot and reloads the artifact it needs, so concurrent
// requests need no coordination.
type Engine struct {
	source LogSource
	loader *artifact.Loader
	logger *zap.Logger
}

// NewEngine builds a view engine. A nil logger disables logging.
func NewEngine(source LogSource, loader *artifact.Loader, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{source: source, loader: loader, logger: logger}
}

// snapshot performs the full collection scan for one request.
func (e *Engine) snapshot(ctx context.Context) (*Frame, error) {
	docs, err := e.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading the logs collection: %w", err)
	}
	return NewFrame(docs), nil
}
