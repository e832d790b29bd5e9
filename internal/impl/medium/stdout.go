// Package medium hosts the built-in Medium extensions: concrete sinks
// plugged into the core through the medium.Type boundary contract.
package medium

import (
	"bufio"
	"context"
	"os"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta:        bundle.Meta{Title: "stdout", Args: docs.ArgSpecs{}},
		Constructor: newStdout,
	}))
}

type stdoutMedium struct {
	w *bufio.Writer
}

func newStdout(attrs map[string]any) (medium.Type, error) {
	return &stdoutMedium{w: bufio.NewWriter(os.Stdout)}, nil
}

func (m *stdoutMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	if _, err := m.w.Write(b.Payload); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: false}
	}
	return m.w.Flush()
}

func (m *stdoutMedium) Close(ctx context.Context) error {
	return m.w.Flush()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
