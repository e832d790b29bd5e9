package medium

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "amqp",
			Args: docs.ArgSpecs{
				{Dest: "amqp_url", Type: docs.FieldString, Description: "AMQP broker URL", Required: true},
				{Dest: "amqp_queue", Type: docs.FieldString, Description: "destination queue, declared durable on startup", Required: true},
			},
		},
		AutoSelectFlag: "amqp_url",
		Constructor:    newAMQP,
	}))
}

type amqpMedium struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func newAMQP(attrs map[string]any) (medium.Type, error) {
	url, _ := attrs["url"].(string)
	queue, _ := attrs["queue"].(string)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &amqpMedium{conn: conn, ch: ch, queue: queue}, nil
}

func (m *amqpMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	err := m.ch.PublishWithContext(ctx, "", m.queue, false, false, amqp.Publishing{
		ContentType: "application/octet-stream",
		Body:        b.Payload,
	})
	if err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *amqpMedium) Close(ctx context.Context) error {
	m.ch.Close()
	return m.conn.Close()
}
