package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/message"
)

func TestParquetBatchProducesValidFooter(t *testing.T) {
	f, err := newParquet(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"a": 1, "b": "x"},
		{"a": 2, "b": "y"},
	}}

	b, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Count)
	require.Equal(t, batch.Binary, b.Encoding)

	// every parquet file starts and ends with the 4-byte magic "PAR1"
	require.True(t, len(b.Payload) > 8)
	require.Equal(t, "PAR1", string(b.Payload[:4]))
	require.Equal(t, "PAR1", string(b.Payload[len(b.Payload)-4:]))
}

func TestParquetBatchSizeZeroIsEmpty(t *testing.T) {
	f, err := newParquet(nil)
	require.NoError(t, err)

	b, err := f.Batch(context.Background(), &sliceSource{}, 0)
	require.NoError(t, err)
	require.True(t, b.Empty())
}
