// Package store persists log records in a DuckDB database file.
//
// The analytics layer never queries with filters: it reads the whole
// collection in insertion order and does all aggregation in memory. The
// store therefore only needs batched insert, a full ordered scan, and a
// count.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/netlens/backend/internal/models"
)

// Store is the log collection contract: write path for the importer, read
// path for the view engine.
type Store interface {
	InsertBatch(ctx context.Context, records []models.LogRecord) error
	FindAll(ctx context.Context) ([]models.Document, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// DuckStore implements Store on a DuckDB file. Writes are serialized
// through a single appender; reads run concurrently.
type DuckStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger

	mu  sync.Mutex // serializes appender batches
	seq atomic.Int64
}

// Open creates or opens the log database at dbPath.
func Open(dbPath string, logger *zap.Logger) (*DuckStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='1GB'",
			"PRAGMA threads=4",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS logs (
			id          VARCHAR PRIMARY KEY,
			seq         BIGINT NOT NULL,
			no          BIGINT,
			time        VARCHAR,
			source      VARCHAR,
			destination VARCHAR,
			protocol    VARCHAR,
			length      BIGINT,
			info        VARCHAR
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logs table: %w", err)
	}

	s := &DuckStore{db: db, dbPath: dbPath, logger: logger}

	var maxSeq sql.NullInt64
	if err := db.QueryRow("SELECT MAX(seq) FROM logs").Scan(&maxSeq); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading log sequence: %w", err)
	}
	if maxSeq.Valid {
		s.seq.Store(maxSeq.Int64)
	}

	logger.Info("log store opened",
		zap.String("path", dbPath),
		zap.Int64("records", s.seq.Load()))
	return s, nil
}

// InsertBatch appends records through the native appender. Records without
// an identifier get one assigned; insertion order fixes the store
// iteration order.
func (s *DuckStore) InsertBatch(ctx context.Context, records []models.LogRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("getting connection: %w", err)
	}
	defer conn.Close()

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("not a DuckDB connection")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "logs")
		if err != nil {
			return fmt.Errorf("creating appender: %w", err)
		}
		defer appender.Close()

		for i := range records {
			if records[i].ID.IsZero() {
				records[i].ID = models.NewRecordID()
			}
			seq := s.seq.Add(1)
			if err := appender.AppendRow(
				records[i].ID.String(),
				seq,
				records[i].No,
				records[i].Time,
				records[i].Source,
				records[i].Destination,
				records[i].Protocol,
				records[i].Length,
				records[i].Info,
			); err != nil {
				return fmt.Errorf("appending row %d: %w", i, err)
			}
		}
		return appender.Flush()
	})
	if err != nil {
		return fmt.Errorf("inserting log batch: %w", err)
	}

	s.logger.Debug("log batch inserted", zap.Int("records", len(records)))
	return nil
}

// FindAll scans every stored record in insertion order. NULL columns are
// omitted from the document's field map.
func (s *DuckStore) FindAll(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, no, time, source, destination, protocol, length, info
		FROM logs ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("scanning logs: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var (
			id                              string
			no, length                      sql.NullInt64
			time, source, dest, proto, info sql.NullString
		)
		if err := rows.Scan(&id, &no, &time, &source, &dest, &proto, &length, &info); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}

		recordID, err := models.ParseRecordID(id)
		if err != nil {
			return nil, fmt.Errorf("parsing record id %q: %w", id, err)
		}

		fields := make(map[string]any, 7)
		if no.Valid {
			fields[models.FieldNo] = no.Int64
		}
		if time.Valid {
			fields[models.FieldTime] = time.String
		}
		if source.Valid {
			fields[models.FieldSource] = source.String
		}
		if dest.Valid {
			fields[models.FieldDestination] = dest.String
		}
		if proto.Valid {
			fields[models.FieldProtocol] = proto.String
		}
		if length.Valid {
			fields[models.FieldLength] = length.Int64
		}
		if info.Valid {
			fields[models.FieldInfo] = info.String
		}
		docs = append(docs, models.Document{ID: recordID, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning logs: %w", err)
	}
	return docs, nil
}

// Count returns the number of stored records.
func (s *DuckStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM logs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting logs: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *DuckStore) Close() error {
	return s.db.Close()
}
