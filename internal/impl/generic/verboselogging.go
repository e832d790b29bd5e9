// Package generic hosts the built-in Generic hooks: startup-lifecycle
// concerns plugged into the core through the generic.Hook boundary
// contract.
package generic

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllGenerics.Add(bundle.GenericSpec{
		Meta: bundle.Meta{
			Title: "verbose-logging",
			Args: docs.ArgSpecs{
				{Dest: "verbose", Type: docs.FieldBool, Description: "raise log level to debug", Default: false},
			},
		},
		Constructor: newVerboseLogging,
	}))
}

type verboseLogging struct{}

func newVerboseLogging(attrs map[string]any) (generic.Hook, error) {
	return verboseLogging{}, nil
}

func (verboseLogging) PreAddArgs(app *cli.App) error  { return nil }
func (verboseLogging) PostAddArgs(app *cli.App) error { return nil }

func (verboseLogging) PostParseArgs(ctx *cli.Context) error {
	if ctx.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
