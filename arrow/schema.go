package arrow

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Column names of the entries schema.
const (
	KeyColumn   = "key"
	ValueColumn = "value"
)

// EntriesSchema returns the Arrow schema for a numeric export.
//
// Fields:
//   - key: utf8 (not null) - entry key
//   - value: float64 (not null) - numeric value
//
// Schema metadata carries the source map name under "collection".
func EntriesSchema(collection string) *arrow.Schema {
	md := arrow.NewMetadata([]string{"collection"}, []string{collection})
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: KeyColumn, Type: arrow.BinaryTypes.String, Nullable: false},
			{Name: ValueColumn, Type: arrow.PrimitiveTypes.Float64, Nullable: false},
		},
		&md,
	)
}

// ValidateSchema checks if a record has the entries layout.
func ValidateSchema(schema *arrow.Schema) error {
	expected := EntriesSchema("")
	if schema.NumFields() != expected.NumFields() {
		return errFieldCount(schema.NumFields(), expected.NumFields())
	}
	for i := 0; i < schema.NumFields(); i++ {
		actual := schema.Field(i)
		want := expected.Field(i)
		if actual.Name != want.Name {
			return errFieldName(i, actual.Name, want.Name)
		}
		if !arrow.TypeEqual(actual.Type, want.Type) {
			return errFieldType(actual.Name, actual.Type, want.Type)
		}
	}
	return nil
}
