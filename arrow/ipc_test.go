package arrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/NamedCache/cache"
)

func TestEncodeDecodeEntries(t *testing.T) {
	enc := NewEncoderWithAllocator(memory.NewGoAllocator())
	entries := []cache.NumericEntry{
		{Key: "alice", Value: 20},
		{Key: "bob", Value: -1.25},
		{Key: "", Value: 0},
	}

	data, err := enc.EncodeEntries("scores", entries)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := enc.DecodeEntries(data)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestEncodeEmptyEntries(t *testing.T) {
	enc := NewEncoder()

	data, err := enc.EncodeEntries("empty", nil)
	require.NoError(t, err)

	got, err := enc.DecodeEntries(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordCarriesCollectionName(t *testing.T) {
	enc := NewEncoder()
	record := enc.EntriesToRecord("scores", []cache.NumericEntry{{Key: "a", Value: 1}})
	defer record.Release()

	md := record.Schema().Metadata()
	idx := md.FindKey("collection")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "scores", md.Values()[idx])
	assert.EqualValues(t, 1, record.NumRows())
}

func TestRecordToEntriesRejectsOtherSchema(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "int32_col", Type: arrow.PrimitiveTypes.Int32},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int32Builder).AppendValues([]int32{1, 2, 3}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	_, err := NewEncoder().RecordToEntries(rec)
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := NewEncoder().DecodeEntries([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}
