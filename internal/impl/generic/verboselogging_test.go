package generic

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestVerboseLoggingRaisesLevelWhenFlagSet(t *testing.T) {
	logrus.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	hook, err := newVerboseLogging(nil)
	require.NoError(t, err)

	app := &cli.App{
		Flags: []cli.Flag{&cli.BoolFlag{Name: "verbose"}},
		Action: func(ctx *cli.Context) error {
			return hook.PostParseArgs(ctx)
		},
	}
	require.NoError(t, app.Run([]string{"avalon", "--verbose"}))
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestVerboseLoggingLeavesLevelWhenFlagUnset(t *testing.T) {
	logrus.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	hook, err := newVerboseLogging(nil)
	require.NoError(t, err)

	app := &cli.App{
		Flags: []cli.Flag{&cli.BoolFlag{Name: "verbose"}},
		Action: func(ctx *cli.Context) error {
			return hook.PostParseArgs(ctx)
		},
	}
	require.NoError(t, app.Run([]string{"avalon"}))
	require.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
