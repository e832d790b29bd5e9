package format

import (
	"bytes"
	"context"
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/message"
)

func TestAvroBatchEncodesDerivedSchema(t *testing.T) {
	f, err := newAvro(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"a": 1, "b": "x"},
		{"a": 2, "b": "y"},
	}}

	b, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Count)
	require.Equal(t, batch.Binary, b.Encoding)

	schema, err := avro.Parse(`{"type": "record", "name": "AvalonRecord", "fields": [{"name": "a", "type": "string"}, {"name": "b", "type": "string"}]}`)
	require.NoError(t, err)

	dec := avro.NewDecoderForSchema(schema, bytes.NewReader(b.Payload))
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	require.Equal(t, "1", out["a"])
}

func TestAvroBatchSizeZeroIsEmpty(t *testing.T) {
	f, err := newAvro(nil)
	require.NoError(t, err)

	b, err := f.Batch(context.Background(), &sliceSource{}, 0)
	require.NoError(t, err)
	require.True(t, b.Empty())
}
