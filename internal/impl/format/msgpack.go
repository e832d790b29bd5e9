package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta:        bundle.Meta{Title: "msgpack", Args: docs.ArgSpecs{}},
		Encoding:    "binary",
		Constructor: newMsgpack,
	}))
}

// msgpackFormat writes one MessagePack-encoded array per batch; each
// element is the record's field map, so a reader decodes straight back
// into map[string]any without a schema.
type msgpackFormat struct{}

func newMsgpack(attrs map[string]any) (format.Type, error) {
	return msgpackFormat{}, nil
}

func (msgpackFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	rows := make([]map[string]any, 0, size)
	for i := 0; i < size; i++ {
		rec, err := src.Next(ctx)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("msgpack: %w", err)
		}
		rows = append(rows, map[string]any(rec))
	}
	if len(rows) == 0 {
		return batch.Batch{}, nil
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(rows); err != nil {
		return batch.Batch{}, fmt.Errorf("msgpack: encode: %w", err)
	}
	return batch.Batch{Payload: buf.Bytes(), Count: len(rows), Encoding: batch.Binary}, nil
}
