package format

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/message"
)

func TestJSONLinesGzBatchDecompresses(t *testing.T) {
	f, err := newJSONLinesGz(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{{"a": 1}, {"a": 2}}}

	b, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Count)

	r, err := gzip.NewReader(bytes.NewReader(b.Payload))
	require.NoError(t, err)
	defer r.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, 2, bytes.Count(out, []byte("\n")))
}

func TestJSONLinesGzBatchSizeZeroIsEmpty(t *testing.T) {
	f, err := newJSONLinesGz(nil)
	require.NoError(t, err)

	b, err := f.Batch(context.Background(), &sliceSource{}, 0)
	require.NoError(t, err)
	require.True(t, b.Empty())
}
