package format

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta:        bundle.Meta{Title: "parquet", Args: docs.ArgSpecs{}},
		Encoding:    "binary",
		Constructor: newParquet,
	}))
}

// parquetFormat schemas itself dynamically from whatever keys appear on
// the first record of a batch, writing every field as an optional
// string-typed Parquet leaf. Avalon's generic model/mapping layer produces
// untyped records, so a fixed Go struct schema is not an option; the
// dynamic group mirrors how parquet-go's own examples build schemas from
// maps rather than committing to column types.
type parquetFormat struct{}

func newParquet(attrs map[string]any) (format.Type, error) {
	return parquetFormat{}, nil
}

func (parquetFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	type row map[string]string
	rows := make([]row, 0, size)
	var columns []string

	for i := 0; i < size; i++ {
		rec, err := src.Next(ctx)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("parquet: %w", err)
		}
		if columns == nil {
			for k := range rec {
				columns = append(columns, k)
			}
			sort.Strings(columns)
		}
		r := make(row, len(columns))
		for _, c := range columns {
			v, _ := rec.Get(c)
			r[c] = fmt.Sprintf("%v", v)
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return batch.Batch{}, nil
	}

	group := make(parquet.Group, len(columns))
	for _, c := range columns {
		group[c] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("avalon_record", group)

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[map[string]string](&buf, schema)
	if _, err := writer.Write(rows); err != nil {
		return batch.Batch{}, fmt.Errorf("parquet: write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return batch.Batch{}, fmt.Errorf("parquet: close: %w", err)
	}
	return batch.Batch{Payload: buf.Bytes(), Count: len(rows), Encoding: batch.Binary}, nil
}
