package generic

import (
	"context"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllGenerics.Add(bundle.GenericSpec{
		Meta: bundle.Meta{
			Title: "tracing",
			Args: docs.ArgSpecs{
				{Dest: "trace-otlp-endpoint", Type: docs.FieldString, Description: "OTLP/gRPC collector endpoint; unset disables tracing", Default: ""},
			},
		},
		Constructor: newTracing,
	}))
}

// Tracer is the no-op tracer by default; PostParseArgs replaces it with a
// real one when --trace-otlp-endpoint is set, so scheduler/producer code
// can unconditionally start spans.
var Tracer trace.Tracer = otel.Tracer("avalon")

type tracingHook struct{}

func newTracing(attrs map[string]any) (generic.Hook, error) {
	return tracingHook{}, nil
}

func (tracingHook) PreAddArgs(app *cli.App) error  { return nil }
func (tracingHook) PostAddArgs(app *cli.App) error { return nil }

func (tracingHook) PostParseArgs(ctx *cli.Context) error {
	endpoint := ctx.String("trace-otlp-endpoint")
	if endpoint == "" {
		return nil
	}
	exporter, err := otlptracegrpc.New(context.Background(), otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("avalon")
	return nil
}
