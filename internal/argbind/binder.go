// Package argbind implements the argument binder (SPEC_FULL.md §4.2): it
// composes CLI flags from every registered extension, and after parsing,
// hydrates each extension's attribute map according to the
// args_prefix/args_mapping rule.
package argbind

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/docs"
)

// ErrArgBinding marks a warning-level condition: an extension declared an
// argument whose destination matches neither its args_prefix nor an entry
// in args_mapping. Per SPEC_FULL.md §7 this is non-fatal: the flag is still
// registered and parseable, it simply isn't attached to any instance.
type ErrArgBinding struct {
	Family, Title, Dest string
}

func (e *ErrArgBinding) Error() string {
	return fmt.Sprintf("%s %q: argument %q matches neither its args_prefix nor args_mapping", e.Family, e.Title, e.Dest)
}

// Binder composes and parses extension-contributed flags.
type Binder struct {
	Log *logrus.Entry
}

// New returns a Binder that logs ArgBindingError warnings through log.
func New(log *logrus.Entry) *Binder {
	return &Binder{Log: log}
}

// toFlag converts one declarative ArgSpec into a concrete urfave/cli flag,
// labeled with the owning extension's title so --help groups flags by
// extension (SPEC_FULL.md §4.2).
//
// a.Required is deliberately NOT propagated to the cli.Flag: urfave/cli
// validates Required flags across the whole flat App.Flags on every
// invocation, but every extension's flags are registered up front
// regardless of whether that extension is used on a given run. Requiredness
// is instead enforced in cliapp.run, once the medium/format/mappings
// actually selected for the run are known.
func toFlag(category string, a docs.ArgSpec) cli.Flag {
	switch a.Type {
	case docs.FieldInt:
		def, _ := a.Default.(int)
		return &cli.IntFlag{Name: a.Dest, Usage: a.Description, Value: def, Category: category}
	case docs.FieldFloat:
		def, _ := a.Default.(float64)
		return &cli.Float64Flag{Name: a.Dest, Usage: a.Description, Value: def, Category: category}
	case docs.FieldBool:
		def, _ := a.Default.(bool)
		return &cli.BoolFlag{Name: a.Dest, Usage: a.Description, Value: def, Category: category}
	case docs.FieldStringSl:
		var def cli.StringSlice
		if ss, ok := a.Default.([]string); ok {
			def = *cli.NewStringSlice(ss...)
		}
		return &cli.StringSliceFlag{Name: a.Dest, Usage: a.Description, Value: &def, Category: category}
	default:
		def, _ := a.Default.(string)
		return &cli.StringFlag{Name: a.Dest, Usage: a.Description, Value: def, Category: category}
	}
}

// ComposeModels, ComposeMappings, ComposeFormats, ComposeMediums and
// ComposeGenerics each append one cli.Flag per ArgSpec declared by every
// extension in the matching set, labeled under that extension's title.
func ComposeModels(set *bundle.ModelSet) []cli.Flag {
	var flags []cli.Flag
	for _, spec := range set.All() {
		for _, a := range spec.Args {
			flags = append(flags, toFlag(spec.Title, a))
		}
	}
	return flags
}

func ComposeMappings(set *bundle.MappingSet) []cli.Flag {
	var flags []cli.Flag
	for _, spec := range set.All() {
		for _, a := range spec.Args {
			flags = append(flags, toFlag(spec.Title, a))
		}
	}
	return flags
}

func ComposeFormats(set *bundle.FormatSet) []cli.Flag {
	var flags []cli.Flag
	for _, spec := range set.All() {
		for _, a := range spec.Args {
			flags = append(flags, toFlag(spec.Title, a))
		}
	}
	return flags
}

func ComposeMediums(set *bundle.MediumSet) []cli.Flag {
	var flags []cli.Flag
	for _, spec := range set.All() {
		for _, a := range spec.Args {
			flags = append(flags, toFlag(spec.Title, a))
		}
	}
	return flags
}

func ComposeGenerics(set *bundle.GenericSet) []cli.Flag {
	var flags []cli.Flag
	for _, spec := range set.All() {
		for _, a := range spec.Args {
			flags = append(flags, toFlag(spec.Title, a))
		}
	}
	return flags
}

// Hydrate applies the prefix/mapping attachment rule (SPEC_FULL.md §4.2)
// for one extension's declared arguments against a parsed cli.Context,
// returning the attribute map later handed to the extension's Constructor.
// Destinations that satisfy neither rule produce a logged ErrArgBinding and
// are left out of the returned map.
func (b *Binder) Hydrate(meta bundle.Meta, ctx *cli.Context) map[string]any {
	attrs := make(map[string]any, len(meta.Args))
	prefix := meta.Prefix()

	reverseMapping := make(map[string]string, len(meta.ArgsMapping))
	for k, v := range meta.ArgsMapping {
		reverseMapping[v] = k
	}

	for _, a := range meta.Args {
		val := valueFor(ctx, a)

		if mappedKey, ok := reverseMapping[a.Dest]; ok {
			attrs[mappedKey] = val
			continue
		}
		if len(a.Dest) > len(prefix) && a.Dest[:len(prefix)] == prefix {
			attrs[a.Dest[len(prefix):]] = val
			continue
		}
		if a.Dest == prefix { // degenerate: dest equals the bare prefix
			continue
		}
		if b.Log != nil {
			b.Log.WithError(&ErrArgBinding{Title: meta.Title, Dest: a.Dest}).Warn("argument binding")
		}
	}
	return attrs
}

func valueFor(ctx *cli.Context, a docs.ArgSpec) any {
	switch a.Type {
	case docs.FieldInt:
		return ctx.Int(a.Dest)
	case docs.FieldFloat:
		return ctx.Float64(a.Dest)
	case docs.FieldBool:
		return ctx.Bool(a.Dest)
	case docs.FieldStringSl:
		return ctx.StringSlice(a.Dest)
	default:
		return ctx.String(a.Dest)
	}
}
