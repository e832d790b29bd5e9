package generic

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestTracingPostParseArgsNoopWhenEndpointUnset(t *testing.T) {
	before := Tracer
	hook, err := newTracing(nil)
	require.NoError(t, err)

	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: "trace-otlp-endpoint"}},
		Action: func(ctx *cli.Context) error {
			return hook.PostParseArgs(ctx)
		},
	}
	require.NoError(t, app.Run([]string{"avalon"}))
	require.Equal(t, before, Tracer)
}
