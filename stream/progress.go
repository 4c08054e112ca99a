package stream

import (
	"encoding/json"

	"github.com/eclipse/paho.mqtt.golang"
)

// Progress is a snapshot of how far a render has got.
type Progress struct {
	Frame int     `json:"frame"`
	Total int     `json:"total"`
	T     float64 `json:"t"`
	Done  bool    `json:"done"`
}

// A ProgressReporter is told about every submitted frame and about the end
// of the render. Report is called on the rendering goroutine.
type ProgressReporter interface {
	Report(p Progress)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(p Progress)

// Report calls fn(p).
func (fn ProgressFunc) Report(p Progress) {
	fn(p)
}

// MQTTReporter publishes progress as JSON on an MQTT topic.
type MQTTReporter struct {
	client mqtt.Client
	topic  string
	every  int
}

// NewMQTTReporter creates an MQTTReporter publishing every n-th frame.
// The final frame and the completion message are always published.
func NewMQTTReporter(client mqtt.Client, topic string, every int) *MQTTReporter {
	r := new(MQTTReporter)
	r.client = client
	r.topic = topic
	r.every = every
	if r.every < 1 {
		r.every = 1
	}
	return r
}

// Report publishes p if it falls on the reporting interval.
func (r *MQTTReporter) Report(p Progress) {
	if !p.Done && p.Frame%r.every != 0 && p.Frame != p.Total {
		return
	}

	b, err := json.Marshal(p)
	if err != nil {
		Logger().Error("encoding progress", "err", err)
		return
	}

	token := r.client.Publish(r.topic, 0, false, b)
	if token.Wait() && token.Error() != nil {
		Logger().Warn("publishing progress", "topic", r.topic, "err", token.Error())
	}
}
