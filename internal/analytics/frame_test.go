package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlens/backend/internal/models"
)

func doc(fields map[string]any) models.Document {
	return models.Document{ID: models.NewRecordID(), Fields: fields}
}

func TestFrameRequire(t *testing.T) {
	frame := NewFrame([]models.Document{
		doc(map[string]any{"Length": int64(100), "Protocol": "TCP"}),
		doc(map[string]any{"Length": int64(200), "Protocol": "UDP"}),
	})

	assert.NoError(t, frame.Require("Length", "Protocol"))

	err := frame.Require("Destination")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Destination", verr.Field)
	assert.Contains(t, verr.Error(), "Destination")
}

func TestFrameRequireAnyRowMissing(t *testing.T) {
	frame := NewFrame([]models.Document{
		doc(map[string]any{"Length": int64(100)}),
		doc(map[string]any{"Protocol": "TCP"}),
	})
	assert.Error(t, frame.Require("Length"))
}

func TestFrameRequireEmptySnapshot(t *testing.T) {
	// An empty collection has no rows that could violate the schema; the
	// views apply their own degenerate-input policies instead.
	frame := NewFrame(nil)
	assert.NoError(t, frame.Require("Length"))
	assert.Zero(t, frame.Len())
}

func TestFrameFloats(t *testing.T) {
	frame := NewFrame([]models.Document{
		doc(map[string]any{"Length": int64(100)}),
		doc(map[string]any{"Length": 250.5}),
		doc(map[string]any{"Length": 7}),
	})

	got, err := frame.Floats("Length")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 250.5, 7}, got)
}

func TestFrameFloatsNonNumeric(t *testing.T) {
	frame := NewFrame([]models.Document{
		doc(map[string]any{"Length": "not a number"}),
	})
	_, err := frame.Floats("Length")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Length", verr.Field)
}

func TestFrameStrings(t *testing.T) {
	frame := NewFrame([]models.Document{
		doc(map[string]any{"Protocol": "TCP"}),
		doc(map[string]any{"Protocol": "DNS"}),
	})
	got, err := frame.Strings("Protocol")
	require.NoError(t, err)
	assert.Equal(t, []string{"TCP", "DNS"}, got)
}

func TestSerializeDocument(t *testing.T) {
	d := doc(map[string]any{"Length": int64(100), "Protocol": "TCP"})
	row := SerializeDocument(d)

	assert.Equal(t, d.ID.String(), row[IDField])
	assert.Equal(t, int64(100), row["Length"])
	assert.Equal(t, "TCP", row["Protocol"])

	// The source document must not be mutated.
	_, leaked := d.Fields[IDField]
	assert.False(t, leaked)

	// Serializing an already-serialized row is a no-op.
	again := SerializeDocument(models.Document{ID: models.NewRecordID(), Fields: row})
	assert.Equal(t, row, again)
}
