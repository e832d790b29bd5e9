package generic

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestColorOutputMatchesTerminalDetection(t *testing.T) {
	hook, err := newColorOutput(nil)
	require.NoError(t, err)

	app := &cli.App{
		Action: func(ctx *cli.Context) error {
			return hook.PostParseArgs(ctx)
		},
	}
	require.NoError(t, app.Run([]string{"avalon"}))
	require.Equal(t, !isatty.IsTerminal(os.Stderr.Fd()), color.NoColor)
}
