// Package analytics materializes the log collection into an in-memory
// frame and serves the four analytical views over it: anomalies, clusters,
// hotspots, and protocol mismatches.
//
// Every view runs the same pipeline: load the fitted artifact, scan the
// collection into a per-request snapshot, project the feature column,
// apply the model, aggregate over the full snapshot, then paginate and
// serialize one page of rows. Predictions re-attach to records purely by
// positional correspondence, so projection must preserve row order.
package analytics

import (
	"github.com/netlens/backend/internal/models"
)

// Frame is an ordered tabular snapshot of the log collection, built from
// one full store scan and discarded after the response is constructed.
type Frame struct {
	docs []models.Document
}

// NewFrame wraps scanned documents in snapshot form. Order is preserved.
func NewFrame(docs []models.Document) *Frame {
	return &Frame{docs: docs}
}

// Len returns the number of records in the snapshot.
func (f *Frame) Len() int {
	return len(f.docs)
}

// Docs returns the snapshot rows in store iteration order.
func (f *Frame) Docs() []models.Document {
	return f.docs
}

// Require verifies each named field is present in every row of the
// snapshot. An empty snapshot has nothing to violate and passes; the views
// handle the empty case with their own degenerate-input policies.
func (f *Frame) Require(fields ...string) error {
	for _, field := range fields {
		for _, doc := range f.docs {
			if _, ok := doc.Fields[field]; !ok {
				return missingFieldError(field)
			}
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Floats projects a field into a numeric vector aligned 1:1 with row
// order. The field must be present (Require) and numeric in every row.
func (f *Frame) Floats(field string) ([]float64, error) {
	if err := f.Require(field); err != nil {
		return nil, err
	}
	out := make([]float64, len(f.docs))
	for i, doc := range f.docs {
		x, ok := asFloat(doc.Fields[field])
		if !ok {
			return nil, badFieldTypeError(field, "numeric")
		}
		out[i] = x
	}
	return out, nil
}

// Strings projects a categorical field aligned 1:1 with row order.
func (f *Frame) Strings(field string) ([]string, error) {
	if err := f.Require(field); err != nil {
		return nil, err
	}
	out := make([]string, len(f.docs))
	for i, doc := range f.docs {
		s, ok := doc.Fields[field].(string)
		if !ok {
			return nil, badFieldTypeError(field, "a string")
		}
		out[i] = s
	}
	return out, nil
}
