package medium

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "nats",
			Args: docs.ArgSpecs{
				{Dest: "nats_url", Type: docs.FieldString, Description: "NATS server URL", Default: nats.DefaultURL},
				{Dest: "nats_subject", Type: docs.FieldString, Description: "subject batches are published to", Required: true},
			},
		},
		AutoSelectFlag: "nats_subject",
		Constructor:    newNATS,
	}))
}

type natsMedium struct {
	conn    *nats.Conn
	subject string
}

func newNATS(attrs map[string]any) (medium.Type, error) {
	url, _ := attrs["url"].(string)
	if url == "" {
		url = nats.DefaultURL
	}
	subject, _ := attrs["subject"].(string)

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &natsMedium{conn: conn, subject: subject}, nil
}

func (m *natsMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	if err := m.conn.Publish(m.subject, b.Payload); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *natsMedium) Close(ctx context.Context) error {
	m.conn.Close()
	return nil
}
