package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/message"
)

func TestMsgpackBatchRoundTrips(t *testing.T) {
	f, err := newMsgpack(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"a": int8(1)},
		{"a": int8(2)},
	}}

	b, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Count)
	require.Equal(t, batch.Binary, b.Encoding)

	var rows []map[string]any
	require.NoError(t, msgpack.Unmarshal(b.Payload, &rows))
	require.Len(t, rows, 2)
}

func TestMsgpackBatchSizeZeroIsEmpty(t *testing.T) {
	f, err := newMsgpack(nil)
	require.NoError(t, err)

	b, err := f.Batch(context.Background(), &sliceSource{}, 0)
	require.NoError(t, err)
	require.True(t, b.Empty())
}
