// Package dataset reads Wireshark CSV exports into log records. Both the
// bulk importer and the model trainer consume the same file format.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/netlens/backend/internal/models"
)

// requiredColumns are the headers a dataset export must carry.
var requiredColumns = []string{
	models.FieldNo,
	models.FieldTime,
	models.FieldSource,
	models.FieldDestination,
	models.FieldProtocol,
	models.FieldLength,
	models.FieldInfo,
}

// ReadCSV parses an exported capture into log records, preserving file
// order. Rows with malformed numeric columns are rejected with their line
// number.
func ReadCSV(path string) ([]models.LogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset is missing the %q column", col)
		}
	}

	records := make([]models.LogRecord, 0, 1024)
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		line++

		field := func(name string) string {
			i := index[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		no, err := strconv.ParseInt(strings.TrimSpace(field(models.FieldNo)), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad %q value: %w", line, models.FieldNo, err)
		}
		length, err := strconv.ParseInt(strings.TrimSpace(field(models.FieldLength)), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad %q value: %w", line, models.FieldLength, err)
		}

		records = append(records, models.LogRecord{
			No:          no,
			Time:        field(models.FieldTime),
			Source:      field(models.FieldSource),
			Destination: field(models.FieldDestination),
			Protocol:    field(models.FieldProtocol),
			Length:      length,
			Info:        field(models.FieldInfo),
		})
	}
	return records, nil
}
