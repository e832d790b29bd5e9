package format

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/message"
)

func TestCSVBatchWritesHeaderOnceAcrossCalls(t *testing.T) {
	f, err := newCSV(map[string]any{"header": true})
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
		{"a": "5", "b": "6"},
	}}

	first, err := f.Batch(context.Background(), src, 1)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(first.Payload), "\n")) // header + row

	second, err := f.Batch(context.Background(), src, 2)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(second.Payload), "\n")) // no repeated header
}

func TestCSVBatchColumnsStableAfterFirstRecord(t *testing.T) {
	f, err := newCSV(nil)
	require.NoError(t, err)

	src := &sliceSource{records: []message.Record{
		{"z": "1", "a": "2"},
	}}
	_, err = f.Batch(context.Background(), src, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "z"}, f.(*csvFormat).columns)
}
