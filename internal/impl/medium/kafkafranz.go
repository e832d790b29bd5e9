package medium

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "kafka-franz",
			Args: docs.ArgSpecs{
				{Dest: "kafka-franz_brokers", Type: docs.FieldStringSl, Description: "bootstrap broker addresses", Required: true},
				{Dest: "kafka-franz_topic", Type: docs.FieldString, Description: "destination topic", Required: true},
			},
		},
		AutoSelectFlag: "kafka-franz_brokers",
		Constructor:    newKafkaFranz,
	}))
}

// kafkaFranzMedium is the modern-client alternative to kafka.go's sarama
// producer, for deployments that prefer franz-go's leaner protocol
// implementation and native context cancellation.
type kafkaFranzMedium struct {
	client *kgo.Client
	topic  string
}

func newKafkaFranz(attrs map[string]any) (medium.Type, error) {
	brokers, _ := attrs["brokers"].([]string)
	topic, _ := attrs["topic"].(string)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &kafkaFranzMedium{client: client, topic: topic}, nil
}

func (m *kafkaFranzMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	res := m.client.ProduceSync(ctx, &kgo.Record{Topic: m.topic, Value: b.Payload})
	if err := res.FirstErr(); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *kafkaFranzMedium) Close(ctx context.Context) error {
	m.client.Close()
	return nil
}
