// Package extension is the public surface third-party plugin packages use
// to register Model, Mapping, Format, Medium, and Generic extensions into
// Avalon's global registry, matching exactly how the in-tree
// internal/impl/* packages register themselves. This is the explicit,
// build-time registry design note §9 chose over dynamic module scanning:
// an out-of-tree plugin imports this package and calls the matching
// Register function from its own init(), then the host binary blank-imports
// the plugin package (or loads it as a Go plugin named on
// AVALON_EXTENSION_PATH, SPEC_FULL.md §6).
//
// A plugin lives in its own module and can never import anything under
// Avalon's internal/ tree, so every type a Register* function's
// constructor signature mentions is declared here rather than reused from
// internal/component or internal/message; each adapts to its internal
// counterpart at registration time.
package extension

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

// FieldType mirrors docs.FieldType for plugin-facing ArgSpecs.
type FieldType = docs.FieldType

// Recognized field types; mirrors the docs package constants.
const (
	FieldString   = docs.FieldString
	FieldInt      = docs.FieldInt
	FieldFloat    = docs.FieldFloat
	FieldBool     = docs.FieldBool
	FieldStringSl = docs.FieldStringSl
)

// ArgSpec mirrors docs.ArgSpec for plugin-facing argument declarations.
type ArgSpec = docs.ArgSpec

// ArgSpecs mirrors docs.ArgSpecs.
type ArgSpecs = docs.ArgSpecs

// Record is the plugin-facing record type. It is structurally identical to
// Avalon's internal message.Record (both are map[string]any underneath),
// so converting between them at the registry boundary is a plain
// conversion, never a deep copy.
type Record map[string]any

// Encoding mirrors batch.Encoding for plugin-facing Format/Medium code.
type Encoding int

const (
	Text   Encoding = Encoding(batch.Text)
	Binary Encoding = Encoding(batch.Binary)
)

// Batch mirrors batch.Batch.
type Batch struct {
	Payload  []byte
	Count    int
	Encoding Encoding
}

// Empty reports whether the batch carries zero records.
func (b Batch) Empty() bool { return b.Count == 0 }

// ModelType produces records; see internal/component/model.Type.
type ModelType interface {
	Next(ctx context.Context) (Record, error)
}

// ModelConstructor builds a new Model instance from its bound attributes.
type ModelConstructor func(attrs map[string]any) (ModelType, error)

// MappingType transforms a record; see internal/component/mapping.Type.
type MappingType interface {
	Map(rec Record) (Record, error)
}

// MappingConstructor builds a new Mapping instance from its bound attributes.
type MappingConstructor func(attrs map[string]any) (MappingType, error)

// Source is the model-shaped proxy a plugin Format pulls records from; see
// internal/component/format.Source.
type Source interface {
	Next(ctx context.Context) (Record, error)
}

// FormatType serializes records pulled from src into one batch payload.
type FormatType interface {
	Batch(ctx context.Context, src Source, size int) (Batch, error)
}

// FormatConstructor builds a new Format instance from its bound attributes.
type FormatConstructor func(attrs map[string]any) (FormatType, error)

// MediumType delivers batches to a sink; see internal/component/medium.Type.
type MediumType interface {
	Write(ctx context.Context, b Batch) error
	Close(ctx context.Context) error
}

// MediumConstructor builds a new Medium instance from its bound attributes.
type MediumConstructor func(attrs map[string]any) (MediumType, error)

// GenericHook's method set is identical to internal/component/generic.Hook
// (both depend only on urfave/cli), so a plugin's hook type satisfies the
// internal interface directly with no adapter required.
type GenericHook = generic.Hook

// GenericConstructor builds a new Hook instance from its bound attributes.
type GenericConstructor func(attrs map[string]any) (GenericHook, error)

// RegisterModel adds a Model extension to the global registry. It panics on
// a duplicate title, matching the teacher's init()-time registration idiom
// where a collision is a programming error caught at process start, not a
// runtime condition to recover from.
func RegisterModel(title string, args docs.ArgSpecs, argsMapping map[string]string, ctor ModelConstructor) {
	must(bundle.AllModels.Add(bundle.ModelSpec{
		Meta: bundle.Meta{Title: title, ArgsMapping: argsMapping, Args: args},
		Constructor: func(attrs map[string]any) (model.Type, error) {
			t, err := ctor(attrs)
			if err != nil {
				return nil, err
			}
			return modelAdapter{t}, nil
		},
	}))
}

// RegisterMapping adds a Mapping extension to the global registry.
func RegisterMapping(title string, args docs.ArgSpecs, argsMapping map[string]string, ctor MappingConstructor) {
	must(bundle.AllMappings.Add(bundle.MappingSpec{
		Meta: bundle.Meta{Title: title, ArgsMapping: argsMapping, Args: args},
		Constructor: func(attrs map[string]any) (mapping.Type, error) {
			t, err := ctor(attrs)
			if err != nil {
				return nil, err
			}
			return mappingAdapter{t}, nil
		},
	}))
}

// RegisterFormat adds a Format extension to the global registry.
func RegisterFormat(title, encoding string, args docs.ArgSpecs, argsMapping map[string]string, ctor FormatConstructor) {
	must(bundle.AllFormats.Add(bundle.FormatSpec{
		Meta: bundle.Meta{Title: title, ArgsMapping: argsMapping, Args: args},
		Constructor: func(attrs map[string]any) (format.Type, error) {
			t, err := ctor(attrs)
			if err != nil {
				return nil, err
			}
			return formatAdapter{t}, nil
		},
		Encoding: encoding,
	}))
}

// RegisterMedium adds a Medium extension to the global registry.
// AutoSelectFlag names the destination whose presence qualifies this medium
// for auto-selection when --output-media is omitted (SPEC_FULL.md §4.6).
func RegisterMedium(title, autoSelectFlag string, args docs.ArgSpecs, argsMapping map[string]string, ctor MediumConstructor) {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{Title: title, ArgsMapping: argsMapping, Args: args},
		Constructor: func(attrs map[string]any) (medium.Type, error) {
			t, err := ctor(attrs)
			if err != nil {
				return nil, err
			}
			return mediumAdapter{t}, nil
		},
		AutoSelectFlag: autoSelectFlag,
	}))
}

// RegisterGeneric adds a Generic hook to the global registry, in the order
// this function is called across all loaded extension packages.
func RegisterGeneric(title string, args docs.ArgSpecs, argsMapping map[string]string, ctor GenericConstructor) {
	must(bundle.AllGenerics.Add(bundle.GenericSpec{
		Meta:        bundle.Meta{Title: title, ArgsMapping: argsMapping, Args: args},
		Constructor: generic.Constructor(ctor),
	}))
}

type modelAdapter struct{ t ModelType }

func (a modelAdapter) Next(ctx context.Context) (message.Record, error) {
	rec, err := a.t.Next(ctx)
	return message.Record(rec), err
}

type mappingAdapter struct{ t MappingType }

func (a mappingAdapter) Map(rec message.Record) (message.Record, error) {
	out, err := a.t.Map(Record(rec))
	if out == nil {
		return nil, err
	}
	return message.Record(out), err
}

type formatAdapter struct{ t FormatType }

func (a formatAdapter) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	b, err := a.t.Batch(ctx, sourceAdapter{src}, size)
	if err != nil {
		return batch.Batch{}, err
	}
	return batch.Batch{Payload: b.Payload, Count: b.Count, Encoding: batch.Encoding(b.Encoding)}, nil
}

type sourceAdapter struct{ src format.Source }

func (s sourceAdapter) Next(ctx context.Context) (Record, error) {
	rec, err := s.src.Next(ctx)
	return Record(rec), err
}

type mediumAdapter struct{ t MediumType }

func (a mediumAdapter) Write(ctx context.Context, b batch.Batch) error {
	return a.t.Write(ctx, Batch{Payload: b.Payload, Count: b.Count, Encoding: Encoding(b.Encoding)})
}

func (a mediumAdapter) Close(ctx context.Context) error { return a.t.Close(ctx) }

func must(err error) {
	if err != nil {
		panic(err)
	}
}
