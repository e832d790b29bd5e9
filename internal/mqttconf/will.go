// Package mqttconf holds shared MQTT connection configuration used by the
// mqtt medium, kept separate so the medium's own file stays focused on the
// Write/Close contract.
package mqttconf

import "errors"

// Will holds the last-will message the broker publishes on this producer's
// behalf if the connection drops without a clean disconnect, letting
// downstream consumers notice a producer vanished mid-run.
type Will struct {
	Enabled  bool
	QoS      byte
	Retained bool
	Topic    string
	Payload  string
}

// Validate reports whether the will is well-formed; a disabled will is
// always valid.
func (w Will) Validate() error {
	if !w.Enabled {
		return nil
	}
	if w.Topic == "" {
		return errors.New("mqtt will: topic required when will is enabled")
	}
	return nil
}
