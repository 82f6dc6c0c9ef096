package arrow

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/VanDung-dev/NamedCache/cache"
)

// ErrNoRecords is returned when an IPC stream holds no record batch.
var ErrNoRecords = errors.New("no records in IPC data")

func errFieldCount(got, want int) error {
	return fmt.Errorf("field count mismatch: got %d, expected %d", got, want)
}

func errFieldName(i int, got, want string) error {
	return fmt.Errorf("field %d name mismatch: got %s, expected %s", i, got, want)
}

func errFieldType(name string, got, want arrow.DataType) error {
	return fmt.Errorf("field %s type mismatch: got %s, expected %s", name, got, want)
}

// Encoder converts numeric entries to and from Arrow IPC streams.
type Encoder struct {
	allocator memory.Allocator
}

// NewEncoder creates a new Encoder with the default memory allocator.
func NewEncoder() *Encoder {
	return &Encoder{
		allocator: memory.DefaultAllocator,
	}
}

// NewEncoderWithAllocator creates an Encoder with a custom allocator.
func NewEncoderWithAllocator(mem memory.Allocator) *Encoder {
	return &Encoder{allocator: mem}
}

// EntriesToRecord builds a record from entries. The caller must Release it.
func (e *Encoder) EntriesToRecord(collection string, entries []cache.NumericEntry) arrow.Record {
	builder := array.NewRecordBuilder(e.allocator, EntriesSchema(collection))
	defer builder.Release()

	keyBuilder := builder.Field(0).(*array.StringBuilder)
	valueBuilder := builder.Field(1).(*array.Float64Builder)
	keyBuilder.Reserve(len(entries))
	valueBuilder.Reserve(len(entries))

	for _, entry := range entries {
		keyBuilder.Append(entry.Key)
		valueBuilder.Append(entry.Value)
	}

	return builder.NewRecord()
}

// RecordToEntries converts a record with the entries layout back to entries.
func (e *Encoder) RecordToEntries(record arrow.Record) ([]cache.NumericEntry, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if err := ValidateSchema(record.Schema()); err != nil {
		return nil, err
	}

	keys, ok := record.Column(0).(*array.String)
	if !ok {
		return nil, errors.New("column 0 (key) is not a String array")
	}
	values, ok := record.Column(1).(*array.Float64)
	if !ok {
		return nil, errors.New("column 1 (value) is not a Float64 array")
	}

	n := int(record.NumRows())
	if keys.Len() < n || values.Len() < n {
		return nil, fmt.Errorf("column length shorter than %d rows", n)
	}

	out := make([]cache.NumericEntry, 0, n)
	for i := 0; i < n; i++ {
		if keys.IsNull(i) || values.IsNull(i) {
			return nil, fmt.Errorf("row %d: null entry", i)
		}
		out = append(out, cache.NumericEntry{Key: keys.Value(i), Value: values.Value(i)})
	}
	return out, nil
}

// SerializeToIPC serializes an Arrow Record to IPC stream bytes.
func (e *Encoder) SerializeToIPC(record arrow.Record) ([]byte, error) {
	var buf bytes.Buffer

	writer := ipc.NewWriter(&buf, ipc.WithSchema(record.Schema()), ipc.WithAllocator(e.allocator))
	defer writer.Close()

	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeFromIPC reads the first record of an IPC stream. The caller must Release it.
func (e *Encoder) DeserializeFromIPC(data []byte) (arrow.Record, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(e.allocator))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer reader.Release()

	if !reader.Next() {
		if reader.Err() != nil {
			return nil, reader.Err()
		}
		return nil, ErrNoRecords
	}

	record := reader.Record()
	record.Retain()

	return record, nil
}

// EncodeEntries converts entries straight to IPC stream bytes.
func (e *Encoder) EncodeEntries(collection string, entries []cache.NumericEntry) ([]byte, error) {
	record := e.EntriesToRecord(collection, entries)
	defer record.Release()
	return e.SerializeToIPC(record)
}

// DecodeEntries parses IPC stream bytes produced by EncodeEntries.
func (e *Encoder) DecodeEntries(data []byte) ([]cache.NumericEntry, error) {
	record, err := e.DeserializeFromIPC(data)
	if err != nil {
		return nil, err
	}
	defer record.Release()
	return e.RecordToEntries(record)
}
