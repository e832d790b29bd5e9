// Package format hosts the built-in Format extensions: concrete
// serializers plugged into the core through the format.Type boundary
// contract.
package format

import (
	"bytes"
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/docs"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta: bundle.Meta{
			Title: "json-lines",
			Args:  docs.ArgSpecs{},
		},
		Encoding:    "text",
		Constructor: newJSONLines,
	}))
}

type jsonLinesFormat struct{}

func newJSONLines(attrs map[string]any) (format.Type, error) {
	return jsonLinesFormat{}, nil
}

func (jsonLinesFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	var buf bytes.Buffer
	n := 0
	for i := 0; i < size; i++ {
		rec, err := src.Next(ctx)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("json-lines: %w", err)
		}
		line, err := jsonAPI.Marshal(map[string]any(rec))
		if err != nil {
			return batch.Batch{}, fmt.Errorf("json-lines: marshal: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
		n++
	}
	return batch.Batch{Payload: buf.Bytes(), Count: n, Encoding: batch.Text}, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
