package medium

import (
	"bufio"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
)

func TestStdoutMediumWritesPayload(t *testing.T) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = orig })

	m := &stdoutMedium{w: bufio.NewWriter(w)}
	require.NoError(t, m.Write(context.Background(), batch.Batch{Payload: []byte("hi\n"), Count: 1}))
	require.NoError(t, m.Close(context.Background()))
	require.NoError(t, w.Close())

	buf := make([]byte, 16)
	n, _ := r.Read(buf)
	require.Equal(t, "hi\n", string(buf[:n]))
}

func TestStdoutMediumEmptyBatchIsNoop(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	m := &stdoutMedium{w: bufio.NewWriter(w)}
	require.NoError(t, m.Write(context.Background(), batch.Batch{}))
	require.NoError(t, w.Close())
}
