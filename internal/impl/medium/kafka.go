package medium

import (
	"context"

	"github.com/IBM/sarama"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "kafka",
			Args: docs.ArgSpecs{
				{Dest: "kafka_brokers", Type: docs.FieldStringSl, Description: "bootstrap broker addresses", Required: true},
				{Dest: "kafka_topic", Type: docs.FieldString, Description: "destination topic", Required: true},
			},
		},
		AutoSelectFlag: "kafka_brokers",
		Constructor:    newKafka,
	}))
}

type kafkaMedium struct {
	producer sarama.SyncProducer
	topic    string
}

func newKafka(attrs map[string]any) (medium.Type, error) {
	brokers, _ := attrs["brokers"].([]string)
	topic, _ := attrs["topic"].(string)

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &kafkaMedium{producer: producer, topic: topic}, nil
}

func (m *kafkaMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	_, _, err := m.producer.SendMessage(&sarama.ProducerMessage{
		Topic: m.topic,
		Value: sarama.ByteEncoder(b.Payload),
	})
	if err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *kafkaMedium) Close(ctx context.Context) error {
	return m.producer.Close()
}
