package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/message"
)

func TestFieldDropRemovesListedFields(t *testing.T) {
	m, err := newFieldDrop(map[string]any{"fields": []string{"password", "ssn"}})
	require.NoError(t, err)

	rec := message.Record{"user": "alice", "password": "hunter2", "ssn": "000-00-0000"}
	out, err := m.Map(rec)
	require.NoError(t, err)

	require.Equal(t, message.Record{"user": "alice"}, out)
	// original record is untouched
	_, stillPresent := rec.Get("password")
	require.True(t, stillPresent)
}

func TestFieldDropMissingFieldIsNoop(t *testing.T) {
	m, err := newFieldDrop(map[string]any{"fields": []string{"nope"}})
	require.NoError(t, err)

	out, err := m.Map(message.Record{"user": "alice"})
	require.NoError(t, err)
	require.Equal(t, message.Record{"user": "alice"}, out)
}
