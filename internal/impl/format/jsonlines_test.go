package format

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/message"
)

func TestJSONLinesBatchEncodesOneLinePerRecord(t *testing.T) {
	f, err := newJSONLines(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"a": 1, "b": "x"},
		{"a": 2, "b": "y"},
	}}

	b, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Count)
	require.Equal(t, batch.Text, b.Encoding)
	require.Equal(t, 2, bytes.Count(b.Payload, []byte("\n")))
}

func TestJSONLinesBatchSizeZeroIsEmpty(t *testing.T) {
	f, err := newJSONLines(nil)
	require.NoError(t, err)

	b, err := f.Batch(context.Background(), &sliceSource{}, 0)
	require.NoError(t, err)
	require.True(t, b.Empty())
}

func TestJSONLinesBatchPropagatesSourceError(t *testing.T) {
	f, err := newJSONLines(nil)
	require.NoError(t, err)

	_, err = f.Batch(context.Background(), &sliceSource{}, 1)
	require.Error(t, err)
}
