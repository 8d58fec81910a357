// static_store.go - In-memory store implementation for testing
package testutil

import (
	"context"
	"sync"

	"github.com/netlens/backend/internal/models"
)

// StaticStore implements store.Store (and the engine's LogSource) over an
// in-memory slice, preserving insertion order.
type StaticStore struct {
	mu      sync.RWMutex
	docs    []models.Document
	scanErr error
}

// NewStaticStore creates a store pre-seeded with the given records.
// Records without an identifier get one assigned, as the real store does.
func NewStaticStore(records ...models.LogRecord) *StaticStore {
	s := &StaticStore{}
	s.InsertBatch(context.Background(), records)
	return s
}

// FailWith makes every subsequent FindAll return err.
func (s *StaticStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanErr = err
}

func (s *StaticStore) InsertBatch(_ context.Context, records []models.LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range records {
		if records[i].ID.IsZero() {
			records[i].ID = models.NewRecordID()
		}
		s.docs = append(s.docs, records[i].Document())
	}
	return nil
}

// AddDocument appends a raw document, letting tests build rows with
// missing fields.
func (s *StaticStore) AddDocument(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
}

func (s *StaticStore) FindAll(_ context.Context) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *StaticStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scanErr != nil {
		return 0, s.scanErr
	}
	return len(s.docs), nil
}

func (s *StaticStore) Close() error {
	return nil
}

// Record builds a fully populated log record for tests.
func Record(no int64, protocol string, length int64) models.LogRecord {
	return models.LogRecord{
		No:          no,
		Time:        "0.000000",
		Source:      "192.168.0.1",
		Destination: "192.168.0.2",
		Protocol:    protocol,
		Length:      length,
		Info:        "test frame",
	}
}
