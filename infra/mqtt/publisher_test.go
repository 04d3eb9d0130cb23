package mqtt

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tripathik9559/railops/core/model"
)

// mockClient implements pahoClient for tests
type mockClient struct {
	opts      *paho.ClientOptions
	published []struct {
		topic   string
		qos     byte
		retain  bool
		payload []byte
	}
	connectErr   error
	publishErr   error
	disconnected bool
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.connectErr == nil && m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(nil)
	}
	return &dummyToken{err: m.connectErr}
}
func (m *mockClient) Disconnect(uint) { m.disconnected = true }
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.published = append(m.published, struct {
		topic   string
		qos     byte
		retain  bool
		payload []byte
	}{topic, qos, retained, payload.([]byte)})
	return &dummyToken{err: m.publishErr}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

func TestNewPublisherRequiresBroker(t *testing.T) {
	if _, err := NewPublisher(Config{}); err == nil {
		t.Fatalf("expected error without broker address")
	}
}

func TestNewPublisherConnectFailure(t *testing.T) {
	mc := &mockClient{connectErr: fmt.Errorf("refused")}
	withMockClient(t, mc)
	if _, err := NewPublisher(Config{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestPublishScheduleUpdate(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", QoS: 1, Retain: true})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	res := model.ScheduleResult{RunID: "run-1", Status: model.StatusOptimal}
	if err := pub.PublishScheduleUpdate(res); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(mc.published))
	}
	p := mc.published[0]
	if p.topic != "railops/schedule/updates" {
		t.Fatalf("unexpected topic %s", p.topic)
	}
	if p.qos != 1 || !p.retain {
		t.Fatalf("qos/retain not forwarded: %+v", p)
	}
	var decoded model.ScheduleResult
	if err := json.Unmarshal(p.payload, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.RunID != "run-1" {
		t.Fatalf("payload run id = %s", decoded.RunID)
	}
}

func TestPublishError(t *testing.T) {
	mc := &mockClient{publishErr: fmt.Errorf("broker gone")}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := pub.PublishScheduleUpdate(model.ScheduleResult{}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestClose(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !mc.disconnected {
		t.Fatalf("client not disconnected")
	}
}
