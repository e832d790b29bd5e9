package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/message"
)

func TestFieldRenameMovesValue(t *testing.T) {
	m, err := newFieldRename(map[string]any{"from": "src_ip", "to": "source_ip"})
	require.NoError(t, err)

	out, err := m.Map(message.Record{"src_ip": "10.0.0.1", "dst_ip": "10.0.0.2"})
	require.NoError(t, err)

	require.Equal(t, message.Record{"source_ip": "10.0.0.1", "dst_ip": "10.0.0.2"}, out)
}

func TestFieldRenameMissingSourceIsNoop(t *testing.T) {
	m, err := newFieldRename(map[string]any{"from": "missing", "to": "renamed"})
	require.NoError(t, err)

	rec := message.Record{"dst_ip": "10.0.0.2"}
	out, err := m.Map(rec)
	require.NoError(t, err)
	require.Equal(t, rec, out)
}
