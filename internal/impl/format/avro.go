package format

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hamba/avro/v2"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta:        bundle.Meta{Title: "avro", Args: docs.ArgSpecs{}},
		Encoding:    "binary",
		Constructor: newAvro,
	}))
}

// avroFormat derives a record schema per batch from the first record's
// keys, same rationale as the parquet format: Avalon records are untyped
// maps, so every field is encoded as an Avro string.
type avroFormat struct{}

func newAvro(attrs map[string]any) (format.Type, error) {
	return avroFormat{}, nil
}

func (avroFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	rows := make([]map[string]any, 0, size)
	var columns []string

	for i := 0; i < size; i++ {
		rec, err := src.Next(ctx)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("avro: %w", err)
		}
		if columns == nil {
			for k := range rec {
				columns = append(columns, k)
			}
			sort.Strings(columns)
		}
		row := make(map[string]any, len(columns))
		for _, c := range columns {
			v, _ := rec.Get(c)
			row[c] = fmt.Sprintf("%v", v)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return batch.Batch{}, nil
	}

	fields := make([]string, len(columns))
	for i, c := range columns {
		fields[i] = fmt.Sprintf(`{"name": %q, "type": "string"}`, c)
	}
	schemaJSON := fmt.Sprintf(`{"type": "record", "name": "AvalonRecord", "fields": [%s]}`, strings.Join(fields, ", "))
	schema, err := avro.Parse(schemaJSON)
	if err != nil {
		return batch.Batch{}, fmt.Errorf("avro: parse schema: %w", err)
	}

	var buf bytes.Buffer
	w := avro.NewEncoderForSchema(schema, &buf)
	for _, row := range rows {
		if err := w.Encode(row); err != nil {
			return batch.Batch{}, fmt.Errorf("avro: encode: %w", err)
		}
	}
	return batch.Batch{Payload: buf.Bytes(), Count: len(rows), Encoding: batch.Binary}, nil
}
