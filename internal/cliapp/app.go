// Package cliapp assembles the urfave/cli application: core flags plus
// every registered extension's contributed flags, the generic hook
// lifecycle, model-spec parsing, medium auto-selection, and the scheduler
// run loop (SPEC_FULL.md §6).
package cliapp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/argbind"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	implmapping "github.com/avalon-project/avalon/internal/impl/mapping"
	"github.com/avalon-project/avalon/internal/producerspec"
	"github.com/avalon-project/avalon/internal/scheduler"
	"github.com/avalon-project/avalon/internal/writerpool"
)

// Run builds and executes the CLI against args (normally os.Args),
// returning the process exit code (SPEC_FULL.md §6 "Exit codes").
func Run(args []string) int {
	log := logrus.NewEntry(logrus.StandardLogger())
	env := bundle.GlobalEnvironment

	app := newApp(env, log)

	exitCode := 0
	app.Action = func(ctx *cli.Context) error {
		code, err := run(ctx, args, env, log)
		exitCode = code
		return err
	}

	if err := app.Run(args); err != nil {
		if exitCode == 0 {
			exitCode = 2
		}
		log.WithError(err).Error("avalon: fatal")
	}
	return exitCode
}

func newApp(env *bundle.Environment, log *logrus.Entry) *cli.App {
	app := &cli.App{
		Name:      "avalon",
		Usage:     "streaming test-data generator",
		ArgsUsage: "[model-spec ...]",
		Flags:     coreFlags(),
	}

	hooks := instantiateGenerics(env)

	for _, h := range hooks {
		if err := h.inst.PreAddArgs(app); err != nil {
			panic(&bundle.GenericHookFailed{Title: h.title, Cause: err})
		}
	}

	app.Flags = append(app.Flags, argbind.ComposeModels(env.Models)...)
	app.Flags = append(app.Flags, argbind.ComposeMappings(env.Mappings)...)
	app.Flags = append(app.Flags, argbind.ComposeFormats(env.Formats)...)
	app.Flags = append(app.Flags, argbind.ComposeMediums(env.Mediums)...)
	app.Flags = append(app.Flags, argbind.ComposeGenerics(env.Generics)...)

	for _, h := range hooks {
		if err := h.inst.PostAddArgs(app); err != nil {
			panic(&bundle.GenericHookFailed{Title: h.title, Cause: err})
		}
	}

	return app
}

func coreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: "number", Usage: "total records to emit (default unlimited)"},
		&cli.IntFlag{Name: "rate", Usage: "global records-per-second cap"},
		&cli.IntFlag{Name: "batch-size", Usage: "records per batch", Value: 1},
		&cli.IntFlag{Name: "output-writers", Usage: "writer-pool size", Value: 1},
		&cli.StringFlag{Name: "output-format", Usage: "format title", Value: "json-lines"},
		&cli.StringFlag{Name: "output-media", Usage: "medium title (default: auto-select from flags)"},
		&cli.StringSliceFlag{Name: "map", Usage: "append a global mapping URI (file://path), applied after per-instance mappings"},
		&cli.BoolFlag{Name: "textlog", Usage: "shortcut: file medium + csv format"},
		&cli.BoolFlag{Name: "list-models", Usage: "print registered model titles and exit"},
		&cli.BoolFlag{Name: "list-formats", Usage: "print registered format titles and exit"},
		&cli.BoolFlag{Name: "list-mediums", Usage: "print registered medium titles and exit"},
		&cli.BoolFlag{Name: "list-mappings", Usage: "print registered mapping titles and exit"},
	}
}

func run(ctx *cli.Context, argv []string, env *bundle.Environment, log *logrus.Entry) (int, error) {
	binder := argbind.New(log)

	for _, h := range instantiateGenerics(env) {
		if err := h.inst.PostParseArgs(ctx); err != nil {
			return 2, &bundle.GenericHookFailed{Title: h.title, Cause: err}
		}
	}

	if ctx.Bool("list-models") {
		printTitles(env.Models.Titles())
		return 0, nil
	}
	if ctx.Bool("list-formats") {
		printTitles(env.Formats.Titles())
		return 0, nil
	}
	if ctx.Bool("list-mediums") {
		printTitles(env.Mediums.Titles())
		return 0, nil
	}
	if ctx.Bool("list-mappings") {
		printTitles(env.Mappings.Titles())
		return 0, nil
	}

	globalMappings, err := resolveMappings(ctx.StringSlice("map"))
	if err != nil {
		return 2, fmt.Errorf("config: --map: %w", err)
	}

	registeredMappings, err := resolveRegisteredMappings(ctx, env, binder)
	if err != nil {
		return 2, err
	}

	specs, err := producerspec.Parse(strings.Join(ctx.Args().Slice(), " "))
	if err != nil {
		return 2, err
	}
	if len(specs) == 0 {
		return 2, fmt.Errorf("config: no model specs given")
	}

	formatTitle := ctx.String("output-format")
	if ctx.Bool("textlog") {
		formatTitle = "csv"
	}
	formatSpec, ok := env.Formats.Get(formatTitle)
	if !ok {
		return 2, fmt.Errorf("config: unknown format %q", formatTitle)
	}
	if err := validateRequired("format", formatSpec.Title, formatSpec.Args, ctx); err != nil {
		return 2, err
	}

	mediumTitle, err := selectMedium(ctx, argv, env)
	if err != nil {
		return 2, err
	}
	mediumSpec, ok := env.Mediums.Get(mediumTitle)
	if !ok {
		return 2, fmt.Errorf("config: unknown medium %q", mediumTitle)
	}
	if err := validateRequired("medium", mediumSpec.Title, mediumSpec.Args, ctx); err != nil {
		return 2, err
	}

	groups := make([]scheduler.ProducerGroup, 0, len(specs))
	for _, spec := range specs {
		modelSpec, ok := env.Models.Get(spec.Title)
		if !ok {
			return 2, fmt.Errorf("config: unknown model %q", spec.Title)
		}
		if err := validateRequired("model", modelSpec.Title, modelSpec.Args, ctx); err != nil {
			return 2, err
		}

		instanceMappings, err := resolveMappings(spec.Mappings)
		if err != nil {
			return 2, fmt.Errorf("config: model %q: %w", spec.Title, err)
		}
		chain := make(mapping.Chain, 0, len(instanceMappings)+len(globalMappings)+len(registeredMappings))
		chain = append(chain, instanceMappings...)
		chain = append(chain, globalMappings...)
		chain = append(chain, registeredMappings...)

		groups = append(groups, scheduler.ProducerGroup{
			Title:  spec.Title,
			Count:  spec.Count,
			Weight: spec.Weight,
			NewModel: func() (model.Type, error) {
				return modelSpec.Constructor(binder.Hydrate(modelSpec.Meta, ctx))
			},
			Mappings: chain,
		})
	}

	cfg := scheduler.DefaultConfig()
	if ctx.IsSet("number") {
		cfg.Number = ctx.Int64("number")
	} else {
		cfg.Unlimited = true
	}
	if ctx.IsSet("rate") {
		if ctx.Int("rate") == 0 {
			return 2, fmt.Errorf("config: --rate 0 is not valid; omit --rate for unlimited")
		}
		cfg.Rate = ctx.Int("rate")
	}
	cfg.BatchSize = ctx.Int("batch-size")
	cfg.Writers = ctx.Int("output-writers")
	cfg.Groups = groups
	cfg.NewFormat = func() (format.Type, error) {
		return formatSpec.Constructor(binder.Hydrate(formatSpec.Meta, ctx))
	}

	pool := writerpool.New(cfg.Writers, func() (medium.Type, error) {
		return mediumSpec.Constructor(binder.Hydrate(mediumSpec.Meta, ctx))
	}, log)

	sched := scheduler.New(cfg, pool, log)
	installSignalHandler(sched)

	code, runErr := sched.Run(context.Background())
	if runErr != nil {
		log.WithError(runErr).Error("avalon: run finished with error")
	}
	log.WithField("emitted", sched.Emitted()).Info("avalon: done")
	return code, nil
}

type genericHook struct {
	title string
	inst  generic.Hook
}

// instantiateGenerics constructs one Hook per registered generic on every
// call. Hooks are cheap, stateless singletons (SPEC_FULL.md §4.3.1); this
// keeps PreAddArgs/PostAddArgs (pre-parse) and PostParseArgs (post-parse)
// symmetric without threading hook instances through the cli.App itself.
func instantiateGenerics(env *bundle.Environment) []genericHook {
	out := make([]genericHook, 0, len(env.Generics.All()))
	for _, spec := range env.Generics.All() {
		inst, err := spec.Constructor(nil)
		if err != nil {
			panic(&bundle.GenericHookFailed{Title: spec.Title, Cause: err})
		}
		out = append(out, genericHook{title: spec.Title, inst: inst})
	}
	return out
}

func printTitles(titles []string) {
	sorted := append([]string(nil), titles...)
	sort.Strings(sorted)
	for _, t := range sorted {
		fmt.Println(t)
	}
}

func resolveMappings(uris []string) (mapping.Chain, error) {
	var chain mapping.Chain
	for _, uri := range uris {
		m, err := implmapping.ResolveURI(uri)
		if err != nil {
			return nil, err
		}
		chain = append(chain, m)
	}
	return chain, nil
}

// validateRequired checks that every Required arg in args was explicitly
// set on ctx. It is only ever called with the args of an extension that was
// actually selected for this run (a chosen format/medium/model, or a
// mapping extension enabled through its own flags) — per spec.md §8, an
// unrelated extension's required flags must never block an invocation that
// doesn't use it.
func validateRequired(family, title string, args docs.ArgSpecs, ctx *cli.Context) error {
	for _, a := range args {
		if a.Required && !ctx.IsSet(a.Dest) {
			return fmt.Errorf("config: %s %q: required flag --%s not set", family, title, a.Dest)
		}
	}
	return nil
}

// mappingEnabled reports whether any of a registered mapping extension's own
// flags was set on the command line (spec.md §4.8(c)).
func mappingEnabled(args docs.ArgSpecs, ctx *cli.Context) bool {
	for _, a := range args {
		if ctx.IsSet(a.Dest) {
			return true
		}
	}
	return false
}

// resolveRegisteredMappings builds component (c) of spec.md §4.8's mapping
// chain: registered mapping extensions (internal/impl/mapping) enabled
// through their own flags, in title order for a deterministic composition.
func resolveRegisteredMappings(ctx *cli.Context, env *bundle.Environment, binder *argbind.Binder) (mapping.Chain, error) {
	titles := append([]string(nil), env.Mappings.Titles()...)
	sort.Strings(titles)

	var chain mapping.Chain
	for _, title := range titles {
		spec, _ := env.Mappings.Get(title)
		if !mappingEnabled(spec.Args, ctx) {
			continue
		}
		if err := validateRequired("mapping", spec.Title, spec.Args, ctx); err != nil {
			return nil, err
		}
		m, err := spec.Constructor(binder.Hydrate(spec.Meta, ctx))
		if err != nil {
			return nil, fmt.Errorf("config: mapping %q: %w", spec.Title, err)
		}
		chain = append(chain, m)
	}
	return chain, nil
}

// selectMedium implements §4.6's auto-selection rule per spec.md §9: the
// medium whose AutoSelectFlag is the first one to appear in command-line
// order among those actually set wins ("first-on-command-line wins");
// --textlog and an explicit --output-media short-circuit the search.
func selectMedium(ctx *cli.Context, argv []string, env *bundle.Environment) (string, error) {
	if ctx.Bool("textlog") {
		return "file", nil
	}
	if ctx.IsSet("output-media") {
		return ctx.String("output-media"), nil
	}

	flagToTitle := make(map[string]string, len(env.Mediums.Titles()))
	for _, spec := range env.Mediums.All() {
		if spec.AutoSelectFlag != "" {
			flagToTitle[spec.AutoSelectFlag] = spec.Title
		}
	}

	for _, tok := range argv {
		name, ok := flagName(tok)
		if !ok {
			continue
		}
		if title, ok := flagToTitle[name]; ok {
			return title, nil
		}
	}
	return "stdout", nil
}

// flagName extracts the flag name from a raw argv token ("--foo",
// "--foo=bar", "-foo"); ok is false for a token that isn't a flag at all
// (a model-spec positional argument, or a flag's separately-passed value).
func flagName(tok string) (name string, ok bool) {
	if !strings.HasPrefix(tok, "-") {
		return "", false
	}
	name = strings.TrimLeft(tok, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}

func installSignalHandler(sched *scheduler.Scheduler) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		first := true
		for range sigCh {
			if first {
				sched.Signaller().CloseAtLeisure()
				first = false
				continue
			}
			sched.Signaller().CloseNow()
		}
	}()
}
