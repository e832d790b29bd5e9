// Package generic defines the lifecycle-only extension family used for
// cross-cutting startup concerns (SPEC_FULL.md §4.3).
package generic

import "github.com/urfave/cli/v2"

// Hook observes the three ordered startup lifecycle points. Hooks run in
// registration order, which is stable and by title (bundle.GenericSet
// preserves insertion order).
type Hook interface {
	// PreAddArgs runs before any extension adds flags to app.
	PreAddArgs(app *cli.App) error
	// PostAddArgs runs after every extension (including other generics) has
	// added its flags, before parsing.
	PostAddArgs(app *cli.App) error
	// PostParseArgs runs after parsing, before pipeline construction.
	PostParseArgs(ctx *cli.Context) error
}

// Constructor builds a new Hook instance. internal/cliapp constructs hooks
// before flags are parsed and passes a nil attrs map; flag-driven hooks
// (verbose-logging, metrics, tracing) read their own flags from the
// cli.Context in PostParseArgs.
type Constructor func(attrs map[string]any) (Hook, error)
