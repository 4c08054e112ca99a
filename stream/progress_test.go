package stream

import (
	"encoding/json"
	"testing"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	mqtt.Token
}

func (doneToken) Wait() bool   { return true }
func (doneToken) Error() error { return nil }

type publishClient struct {
	mqtt.Client
	topics   []string
	payloads [][]byte
}

func (c *publishClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	return doneToken{}
}

func TestMQTTReporterInterval(t *testing.T) {
	client := new(publishClient)
	rep := NewMQTTReporter(client, "render/progress", 4)

	for i := 1; i <= 10; i++ {
		rep.Report(Progress{Frame: i, Total: 10, T: float64(i) / 10})
	}
	rep.Report(Progress{Frame: 10, Total: 10, T: 1, Done: true})

	// frames 4 and 8, the last frame, then completion
	require.Len(t, client.payloads, 4)
	for _, topic := range client.topics {
		assert.Equal(t, "render/progress", topic)
	}

	var last Progress
	require.NoError(t, json.Unmarshal(client.payloads[3], &last))
	assert.Equal(t, Progress{Frame: 10, Total: 10, T: 1, Done: true}, last)
}
