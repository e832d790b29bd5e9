package medium

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
)

func TestFileMediumWritesPayloadToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	m, err := newFile(map[string]any{"name": path})
	require.NoError(t, err)

	require.NoError(t, m.Write(context.Background(), batch.Batch{Payload: []byte("hello\n"), Count: 1}))
	require.NoError(t, m.Close(context.Background()))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(contents))
}

func TestFileMediumEmptyBatchIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	m, err := newFile(map[string]any{"name": path})
	require.NoError(t, err)

	require.NoError(t, m.Write(context.Background(), batch.Batch{}))
	require.NoError(t, m.Close(context.Background()))

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
