package argbind

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/docs"
)

func TestHydratePrefixRule(t *testing.T) {
	meta := bundle.Meta{
		Title: "snort",
		Args: docs.ArgSpecs{
			{Dest: "snort_seed", Type: docs.FieldInt, Default: 0},
		},
	}
	require.Equal(t, "snort_", meta.Prefix())

	app := &cli.App{
		Flags: []cli.Flag{&cli.IntFlag{Name: "snort_seed"}},
		Action: func(ctx *cli.Context) error {
			b := New(nil)
			attrs := b.Hydrate(meta, ctx)
			require.Equal(t, 42, attrs["seed"])
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"avalon", "--snort_seed", "42"}))
}

func TestHydrateMappingRule(t *testing.T) {
	meta := bundle.Meta{
		Title:       "snort",
		ArgsMapping: map[string]string{"rate": "snort_events_per_sec"},
		Args: docs.ArgSpecs{
			{Dest: "snort_events_per_sec", Type: docs.FieldInt, Default: 0},
		},
	}

	app := &cli.App{
		Flags: []cli.Flag{&cli.IntFlag{Name: "snort_events_per_sec"}},
		Action: func(ctx *cli.Context) error {
			b := New(nil)
			attrs := b.Hydrate(meta, ctx)
			require.Equal(t, 7, attrs["rate"])
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"avalon", "--snort_events_per_sec", "7"}))
}

func TestHydrateUnmatchedDestIsSkipped(t *testing.T) {
	meta := bundle.Meta{
		Title: "snort",
		Args: docs.ArgSpecs{
			{Dest: "totally_unrelated", Type: docs.FieldString, Default: ""},
		},
	}

	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: "totally_unrelated"}},
		Action: func(ctx *cli.Context) error {
			b := New(nil)
			attrs := b.Hydrate(meta, ctx)
			require.NotContains(t, attrs, "totally_unrelated")
			require.Empty(t, attrs)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"avalon", "--totally_unrelated", "x"}))
}
