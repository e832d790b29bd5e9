package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta:        bundle.Meta{Title: "json-lines-gz", Args: docs.ArgSpecs{}},
		Encoding:    "binary",
		Constructor: newJSONLinesGz,
	}))
}

// jsonLinesGzFormat wraps the json-lines encoding in gzip, a combination
// useful for mediums billed by payload size (s3, http).
type jsonLinesGzFormat struct {
	inner jsonLinesFormat
}

func newJSONLinesGz(attrs map[string]any) (format.Type, error) {
	return jsonLinesGzFormat{}, nil
}

func (f jsonLinesGzFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	b, err := f.inner.Batch(ctx, src, size)
	if err != nil {
		return batch.Batch{}, err
	}
	if b.Empty() {
		return batch.Batch{}, nil
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(b.Payload); err != nil {
		return batch.Batch{}, fmt.Errorf("json-lines-gz: %w", err)
	}
	if err := w.Close(); err != nil {
		return batch.Batch{}, fmt.Errorf("json-lines-gz: %w", err)
	}
	return batch.Batch{Payload: buf.Bytes(), Count: b.Count, Encoding: batch.Binary}, nil
}
