package generic

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestMetricsPostParseArgsNoopWhenAddrUnset(t *testing.T) {
	hook, err := newMetrics(nil)
	require.NoError(t, err)

	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: "metrics-addr"}},
		Action: func(ctx *cli.Context) error {
			return hook.PostParseArgs(ctx)
		},
	}
	require.NoError(t, app.Run([]string{"avalon"}))
}

func TestMetricsCountersAreRegistered(t *testing.T) {
	EmittedTotal.Add(1)
	DroppedTotal.Add(1)
	ErrorsTotal.WithLabelValues("model").Inc()
	BatchLatency.Observe(0.01)

	for _, c := range []prometheus.Collector{EmittedTotal, DroppedTotal, ErrorsTotal, BatchLatency} {
		var are prometheus.AlreadyRegisteredError
		require.ErrorAs(t, prometheus.Register(c), &are)
	}
}
