package medium

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/mqttconf"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "mqtt",
			Args: docs.ArgSpecs{
				{Dest: "mqtt_broker", Type: docs.FieldString, Description: "broker URL, e.g. tcp://localhost:1883", Required: true},
				{Dest: "mqtt_topic", Type: docs.FieldString, Description: "topic batches are published to", Required: true},
				{Dest: "mqtt_qos", Type: docs.FieldInt, Description: "publish QoS level", Default: 1},
				{Dest: "mqtt_will_topic", Type: docs.FieldString, Description: "topic the broker publishes to if this producer disconnects uncleanly (empty disables the will)"},
				{Dest: "mqtt_will_payload", Type: docs.FieldString, Description: "payload of the disconnect will message", Default: "producer offline"},
				{Dest: "mqtt_will_qos", Type: docs.FieldInt, Description: "QoS of the disconnect will message", Default: 1},
				{Dest: "mqtt_will_retained", Type: docs.FieldBool, Description: "whether the broker retains the will message"},
			},
		},
		AutoSelectFlag: "mqtt_broker",
		Constructor:    newMQTT,
	}))
}

type mqttMedium struct {
	client mqtt.Client
	topic  string
	qos    byte
}

func newMQTT(attrs map[string]any) (medium.Type, error) {
	broker, _ := attrs["broker"].(string)
	topic, _ := attrs["topic"].(string)
	qos, _ := attrs["qos"].(int)

	willTopic, _ := attrs["will_topic"].(string)
	willPayload, _ := attrs["will_payload"].(string)
	willQoS, _ := attrs["will_qos"].(int)
	willRetained, _ := attrs["will_retained"].(bool)
	will := mqttconf.Will{
		Enabled:  willTopic != "",
		QoS:      byte(willQoS),
		Retained: willRetained,
		Topic:    willTopic,
		Payload:  willPayload,
	}
	if err := will.Validate(); err != nil {
		return nil, err
	}

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(fmt.Sprintf("avalon-%s-%d", topic, time.Now().UnixNano()))
	if will.Enabled {
		opts = opts.SetWill(will.Topic, will.Payload, will.QoS, will.Retained)
	}
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &mqttMedium{client: client, topic: topic, qos: byte(qos)}, nil
}

func (m *mqttMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	token := m.client.Publish(m.topic, m.qos, false, b.Payload)
	if token.Wait() && token.Error() != nil {
		return &medium.WriteFailed{Cause: token.Error(), Retriable: true}
	}
	return nil
}

func (m *mqttMedium) Close(ctx context.Context) error {
	m.client.Disconnect(250)
	return nil
}
