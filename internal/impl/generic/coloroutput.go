package generic

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllGenerics.Add(bundle.GenericSpec{
		Meta:        bundle.Meta{Title: "color-output", Args: docs.ArgSpecs{}},
		Constructor: newColorOutput,
	}))
}

type colorOutput struct{}

func newColorOutput(attrs map[string]any) (generic.Hook, error) {
	return colorOutput{}, nil
}

func (colorOutput) PreAddArgs(app *cli.App) error  { return nil }
func (colorOutput) PostAddArgs(app *cli.App) error { return nil }

func (colorOutput) PostParseArgs(ctx *cli.Context) error {
	color.NoColor = !isatty.IsTerminal(os.Stderr.Fd())
	return nil
}
