package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnortNextProducesExpectedFields(t *testing.T) {
	m, err := newSnort(map[string]any{"seed": 1, "sensor": "sensor-42"})
	require.NoError(t, err)

	rec, err := m.Next(context.Background())
	require.NoError(t, err)

	require.Equal(t, "sensor-42", rec["sensor"])
	require.Contains(t, rec, "event_id")
	require.Contains(t, rec, "classification")
	require.Contains(t, rec, "src_ip")
	require.Contains(t, rec, "dst_ip")

	sid, ok := rec["sid"].(int)
	require.True(t, ok)
	require.Equal(t, 1000001, sid)
}

func TestSnortSameSeedIsDeterministic(t *testing.T) {
	a, err := newSnort(map[string]any{"seed": 7})
	require.NoError(t, err)
	b, err := newSnort(map[string]any{"seed": 7})
	require.NoError(t, err)

	ra, err := a.Next(context.Background())
	require.NoError(t, err)
	rb, err := b.Next(context.Background())
	require.NoError(t, err)

	require.Equal(t, ra["classification"], rb["classification"])
	require.Equal(t, ra["src_ip"], rb["src_ip"])
	require.Equal(t, ra["proto"], rb["proto"])
}

func TestSnortSidIncrementsAcrossCalls(t *testing.T) {
	m, err := newSnort(map[string]any{"seed": 3})
	require.NoError(t, err)

	first, err := m.Next(context.Background())
	require.NoError(t, err)
	second, err := m.Next(context.Background())
	require.NoError(t, err)

	require.Equal(t, first["sid"].(int)+1, second["sid"].(int))
}
