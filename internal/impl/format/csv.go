package format

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta: bundle.Meta{
			Title: "csv",
			Args: docs.ArgSpecs{
				{Dest: "csv_header", Type: docs.FieldBool, Description: "emit a header row on the first batch written by this instance", Default: false},
			},
		},
		Encoding:    "text",
		Constructor: newCSV,
	}))
}

// csvFormat has no ecosystem CSV codec candidate in the example pack, so it
// is built on stdlib encoding/csv; field order is derived from the first
// record this instance formats and held fixed for the life of the instance so
// every row in a --textlog session lines up under one header.
type csvFormat struct {
	header    bool
	headerSet bool
	columns   []string
}

func newCSV(attrs map[string]any) (format.Type, error) {
	header, _ := attrs["header"].(bool)
	return &csvFormat{header: header}, nil
}

func (f *csvFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	n := 0
	for i := 0; i < size; i++ {
		rec, err := src.Next(ctx)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("csv: %w", err)
		}
		if f.columns == nil {
			cols := make([]string, 0, len(rec))
			for k := range rec {
				cols = append(cols, k)
			}
			sort.Strings(cols)
			f.columns = cols
		}
		if f.header && !f.headerSet {
			if err := w.Write(f.columns); err != nil {
				return batch.Batch{}, fmt.Errorf("csv: write header: %w", err)
			}
			f.headerSet = true
		}
		row := make([]string, len(f.columns))
		for i, col := range f.columns {
			v, _ := rec.Get(col)
			row[i] = fmt.Sprintf("%v", v)
		}
		if err := w.Write(row); err != nil {
			return batch.Batch{}, fmt.Errorf("csv: write row: %w", err)
		}
		n++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return batch.Batch{}, fmt.Errorf("csv: %w", err)
	}
	return batch.Batch{Payload: buf.Bytes(), Count: n, Encoding: batch.Text}, nil
}
