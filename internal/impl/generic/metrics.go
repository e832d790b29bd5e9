package generic

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/generic"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllGenerics.Add(bundle.GenericSpec{
		Meta: bundle.Meta{
			Title: "metrics",
			Args: docs.ArgSpecs{
				{Dest: "metrics-addr", Type: docs.FieldString, Description: "address to serve Prometheus metrics on; unset disables the server", Default: ""},
			},
		},
		Constructor: newMetrics,
	}))
}

// EmittedTotal, DroppedTotal, ErrorsTotal and BatchLatency are registered
// unconditionally so producer/scheduler code can record against them
// without checking whether the metrics hook is active; they're simply
// never scraped if --metrics-addr is unset.
var (
	EmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "avalon_emitted_total",
		Help: "records credited to the sink",
	})
	DroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "avalon_dropped_total",
		Help: "records dropped by a mapping",
	})
	ErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "avalon_errors_total",
		Help: "errors raised by a model, format, or medium",
	}, []string{"component"})
	BatchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "avalon_batch_write_seconds",
		Help: "time spent writing one batch to the medium",
	})
)

func init() {
	prometheus.MustRegister(EmittedTotal, DroppedTotal, ErrorsTotal, BatchLatency)
}

type metricsHook struct {
	addr string
}

func newMetrics(attrs map[string]any) (generic.Hook, error) {
	addr, _ := attrs["addr"].(string)
	return &metricsHook{addr: addr}, nil
}

func (*metricsHook) PreAddArgs(app *cli.App) error  { return nil }
func (*metricsHook) PostAddArgs(app *cli.App) error { return nil }

func (h *metricsHook) PostParseArgs(ctx *cli.Context) error {
	addr := ctx.String("metrics-addr")
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("metrics hook: server stopped")
		}
	}()
	return nil
}
