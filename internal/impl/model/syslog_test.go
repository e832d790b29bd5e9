package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyslogNextProducesRFC5424ParseableRecord(t *testing.T) {
	m, err := newSyslog(map[string]any{"seed": 11, "app": "myapp"})
	require.NoError(t, err)

	rec, err := m.Next(context.Background())
	require.NoError(t, err)

	require.Equal(t, "myapp", rec["app_name"])
	require.Contains(t, rec, "pri")
	require.Contains(t, rec, "msg_id")

	pri, ok := rec["pri"].(int)
	require.True(t, ok)
	require.Equal(t, rec["facility"].(int)*8+rec["severity"].(int), pri)
}

func TestSyslogFacilitySeverityWithinRFC5424Table(t *testing.T) {
	m, err := newSyslog(map[string]any{"seed": 12})
	require.NoError(t, err)

	rec, err := m.Next(context.Background())
	require.NoError(t, err)

	require.Contains(t, syslogFacilities, rec["facility"].(int))
	require.Contains(t, syslogSeverities, rec["severity"].(int))
}
